// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/paytrack/backend/internal/domain/entity"
)

// UpsertPayScheduleRequest represents the request body for creating or
// replacing the user's pay schedule.
type UpsertPayScheduleRequest struct {
	Frequency   string `json:"frequency" binding:"required,oneof=weekly biweekly"`
	LastPayDate string `json:"last_pay_date" binding:"required"`
}

// PayScheduleResponse represents the user's pay schedule in API responses.
type PayScheduleResponse struct {
	Frequency   string    `json:"frequency"`
	LastPayDate string    `json:"last_pay_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPayScheduleResponse converts a domain PaySchedule entity to a PayScheduleResponse DTO.
func ToPayScheduleResponse(schedule *entity.PaySchedule) PayScheduleResponse {
	return PayScheduleResponse{
		Frequency:   string(schedule.Frequency),
		LastPayDate: schedule.LastPayDate.Format("2006-01-02"),
		CreatedAt:   schedule.CreatedAt,
		UpdatedAt:   schedule.UpdatedAt,
	}
}

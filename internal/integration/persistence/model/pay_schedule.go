// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// PayScheduleModel represents the pay_schedules table in the database.
// Each user has at most one schedule.
type PayScheduleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Frequency   string    `gorm:"type:varchar(10);not null"`
	LastPayDate time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the PayScheduleModel.
func (PayScheduleModel) TableName() string {
	return "pay_schedules"
}

// ToEntity converts a PayScheduleModel to a domain PaySchedule entity.
func (m *PayScheduleModel) ToEntity() *entity.PaySchedule {
	return &entity.PaySchedule{
		ID:          m.ID,
		UserID:      m.UserID,
		Frequency:   valueobject.PayFrequency(m.Frequency),
		LastPayDate: m.LastPayDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PayScheduleFromEntity creates a PayScheduleModel from a domain PaySchedule entity.
func PayScheduleFromEntity(schedule *entity.PaySchedule) *PayScheduleModel {
	return &PayScheduleModel{
		ID:          schedule.ID,
		UserID:      schedule.UserID,
		Frequency:   string(schedule.Frequency),
		LastPayDate: schedule.LastPayDate,
		CreatedAt:   schedule.CreatedAt,
		UpdatedAt:   schedule.UpdatedAt,
	}
}

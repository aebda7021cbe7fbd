// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/paytrack/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for budget category creation.
type CreateCategoryRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=50"`
	Color           string  `json:"color,omitempty"`
	Icon            string  `json:"icon,omitempty"`
	AllocatedAmount float64 `json:"allocated_amount" binding:"gte=0"`
}

// UpdateCategoryRequest represents the request body for budget category update.
type UpdateCategoryRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color           *string  `json:"color,omitempty"`
	Icon            *string  `json:"icon,omitempty"`
	AllocatedAmount *float64 `json:"allocated_amount,omitempty" binding:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// CategoryResponse represents a single budget category in API responses.
type CategoryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	Icon            string    `json:"icon"`
	AllocatedAmount string    `json:"allocated_amount"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing budget categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain BudgetCategory entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.BudgetCategory) CategoryResponse {
	return CategoryResponse{
		ID:              cat.ID.String(),
		Name:            cat.Name,
		Color:           cat.Color,
		Icon:            cat.Icon,
		AllocatedAmount: cat.AllocatedAmount.String(),
		IsActive:        cat.IsActive,
		CreatedAt:       cat.CreatedAt,
		UpdatedAt:       cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of BudgetCategory entities to CategoryListResponse.
func ToCategoryListResponse(categories []*entity.BudgetCategory) CategoryListResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: responses,
	}
}

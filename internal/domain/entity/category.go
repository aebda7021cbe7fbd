// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is the default color for budget categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for budget categories.
const DefaultCategoryIcon = "tag"

// BudgetCategory represents a spending bucket with a nominal monthly allocation.
// AllocatedAmount is the monthly budget; period budgets are pro-rated from it.
type BudgetCategory struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Color           string
	Icon            string
	AllocatedAmount decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewBudgetCategory creates a new BudgetCategory entity.
// Defaulting of color and icon is applied in the application layer before
// calling this constructor.
func NewBudgetCategory(userID uuid.UUID, name, color, icon string, allocatedAmount decimal.Decimal) *BudgetCategory {
	now := time.Now().UTC()

	return &BudgetCategory{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Color:           color,
		Icon:            icon,
		AllocatedAmount: allocatedAmount,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(50);not null"`
	Color           string          `gorm:"type:varchar(7);default:'#6366F1'"`
	Icon            string          `gorm:"type:varchar(50);default:'tag'"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive        bool            `gorm:"default:true;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain BudgetCategory entity.
func (m *CategoryModel) ToEntity() *entity.BudgetCategory {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.BudgetCategory{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Color:           m.Color,
		Icon:            m.Icon,
		AllocatedAmount: m.AllocatedAmount,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain BudgetCategory entity.
func CategoryFromEntity(category *entity.BudgetCategory) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:              category.ID,
		UserID:          category.UserID,
		Name:            category.Name,
		Color:           category.Color,
		Icon:            category.Icon,
		AllocatedAmount: category.AllocatedAmount,
		IsActive:        category.IsActive,
		CreatedAt:       category.CreatedAt,
		UpdatedAt:       category.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

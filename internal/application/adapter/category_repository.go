// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for budget category persistence operations.
type CategoryRepository interface {
	// Create creates a new budget category in the database.
	Create(ctx context.Context, category *entity.BudgetCategory) error

	// FindByID retrieves a budget category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BudgetCategory, error)

	// FindByUser retrieves all budget categories for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetCategory, error)

	// FindActiveByUser retrieves the user's active budget categories.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetCategory, error)

	// Update updates an existing budget category in the database.
	Update(ctx context.Context, category *entity.BudgetCategory) error

	// Delete soft-deletes a budget category.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByNameAndUser checks if a category with the given name exists for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)
}

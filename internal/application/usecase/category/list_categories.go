// Package category contains budget category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing budget categories.
type ListCategoriesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool // When set, inactive categories are filtered out
}

// ListCategoriesOutput represents the output of listing budget categories.
type ListCategoriesOutput struct {
	Categories []*entity.BudgetCategory
}

// ListCategoriesUseCase handles listing budget categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var categories []*entity.BudgetCategory
	var err error

	if input.ActiveOnly {
		categories, err = uc.categoryRepo.FindActiveByUser(ctx, input.UserID)
	} else {
		categories, err = uc.categoryRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{Categories: categories}, nil
}

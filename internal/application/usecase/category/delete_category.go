// Package category contains budget category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/application/adapter"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for budget category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of budget category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles budget category deletion logic. Deletion is a
// soft delete; transactions referencing the category keep their reference and
// become effectively uncategorized for future analyses.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
// reportCache may be nil.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, reportCache adapter.ReportCache) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the budget category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	// Find the existing category
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Check if user is authorized to delete this category
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to delete this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	// Delete the category
	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	// The category no longer participates in analyses
	invalidateReports(ctx, uc.reportCache, input.UserID)

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}

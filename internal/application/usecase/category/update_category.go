// Package category contains budget category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for budget category update.
type UpdateCategoryInput struct {
	CategoryID      uuid.UUID
	UserID          uuid.UUID
	Name            *string          // Optional
	Color           *string          // Optional
	Icon            *string          // Optional
	AllocatedAmount *decimal.Decimal // Optional
	IsActive        *bool            // Optional
}

// UpdateCategoryOutput represents the output of budget category update.
type UpdateCategoryOutput struct {
	Category *entity.BudgetCategory
}

// UpdateCategoryUseCase handles budget category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
// reportCache may be nil.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, reportCache adapter.ReportCache) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the budget category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
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

	// Check if user is authorized to modify this category
	if category.UserID != input.UserID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to modify this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	// Update name if provided
	if input.Name != nil {
		// Validate name length
		if len(*input.Name) > MaxCategoryNameLength {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameTooLong,
				fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
				domainerror.ErrCategoryNameTooLong,
			)
		}

		// Check if new name already exists for this user (excluding current category)
		if *input.Name != category.Name {
			exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, *input.Name, input.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryNameExists,
					"a category with this name already exists",
					domainerror.ErrCategoryNameExists,
				)
			}
		}

		category.Name = *input.Name
	}

	// Update color if provided
	if input.Color != nil {
		// Validate color format
		if *input.Color != "" && !isValidHexColor(*input.Color) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidColorFormat,
				"color must be a valid hex format (#XXXXXX)",
				domainerror.ErrInvalidColorFormat,
			)
		}
		category.Color = *input.Color
	}

	// Update icon if provided
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	// Update monthly allocation if provided
	if input.AllocatedAmount != nil {
		if input.AllocatedAmount.IsNegative() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeNegativeAllocatedAmount,
				"allocated_amount must not be negative",
				domainerror.ErrNegativeAllocatedAmount,
			)
		}
		category.AllocatedAmount = *input.AllocatedAmount
	}

	// Update active flag if provided
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	// Update timestamp
	category.UpdatedAt = time.Now().UTC()

	// Save updated category
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// Allocation or active-state changes alter analysis results
	invalidateReports(ctx, uc.reportCache, input.UserID)

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

// Package category contains budget category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/application/adapter"
	"github.com/paytrack/backend/internal/domain/entity"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateCategoryInput represents the input for budget category creation.
type CreateCategoryInput struct {
	UserID          uuid.UUID
	Name            string
	Color           string // Optional, defaults to DefaultCategoryColor
	Icon            string // Optional, defaults to DefaultCategoryIcon
	AllocatedAmount decimal.Decimal
}

// CreateCategoryOutput represents the output of budget category creation.
type CreateCategoryOutput struct {
	Category *entity.BudgetCategory
}

// CreateCategoryUseCase handles budget category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
// reportCache may be nil.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, reportCache adapter.ReportCache) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the budget category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	// Validate required fields
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			nil,
		)
	}

	// Validate name length
	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	// Validate color format if provided
	if input.Color != "" && !isValidHexColor(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	// The monthly allocation may be zero but never negative
	if input.AllocatedAmount.IsNegative() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNegativeAllocatedAmount,
			"allocated_amount must not be negative",
			domainerror.ErrNegativeAllocatedAmount,
		)
	}

	// Apply default values for optional fields (Application layer responsibility)
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	// Check if category name already exists for this user
	exists, err := uc.categoryRepo.ExistsByNameAndUser(ctx, name, input.UserID)
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

	// Create category entity with defaulted values
	category := entity.NewBudgetCategory(input.UserID, name, color, icon, input.AllocatedAmount)

	// Save category to database
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	// A new allocation changes every period budget
	invalidateReports(ctx, uc.reportCache, input.UserID)

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// invalidateReports drops the user's cached analysis reports after a mutation.
// Cache failures are logged, never surfaced.
func invalidateReports(ctx context.Context, cache adapter.ReportCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate cached reports", "userID", userID, "error", err)
	}
}

// isValidHexColor validates hex color format (#XXXXXX or #XXX).
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

func testCategory(name string, monthlyAllocation string) *entity.BudgetCategory {
	return &entity.BudgetCategory{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Name:            name,
		Color:           "#FF5722",
		Icon:            "tag",
		AllocatedAmount: decimal.RequireFromString(monthlyAllocation),
		IsActive:        true,
	}
}

func testTransaction(categoryID *uuid.UUID, day time.Time, amount string) *entity.Transaction {
	return &entity.Transaction{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Date:       day,
		Name:       "test transaction",
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
	}
}

func biweeklyPeriod(t *testing.T) valueobject.PayPeriod {
	t.Helper()
	period, err := valueobject.NewPayPeriod(date(2025, time.January, 3), date(2025, time.January, 16))
	if err != nil {
		t.Fatalf("failed to build period: %v", err)
	}
	return period
}

func TestProRateMonthlyAmount(t *testing.T) {
	tests := []struct {
		name     string
		monthly  string
		days     int
		expected string
	}{
		{name: "600 over a biweekly period", monthly: "600", days: 14, expected: "280"},
		{name: "300 over a weekly period", monthly: "300", days: 7, expected: "70"},
		{name: "full 30 days returns the monthly amount", monthly: "451.23", days: 30, expected: "451.23"},
		{name: "zero allocation", monthly: "0", days: 14, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := proRateMonthlyAmount(decimal.RequireFromString(tt.monthly), tt.days)
			want := decimal.RequireFromString(tt.expected)
			if !got.Equal(want) {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}

	// Non-integer results keep decimal precision; 100/30*14 rounds to 46.67.
	t.Run("non-integer result", func(t *testing.T) {
		got := proRateMonthlyAmount(decimal.NewFromInt(100), 14)
		if rounded := got.Round(2); !rounded.Equal(decimal.RequireFromString("46.67")) {
			t.Errorf("expected 46.67 after rounding, got %s", rounded)
		}
	})
}

func TestAggregateCategorySpend(t *testing.T) {
	period := biweeklyPeriod(t)
	groceries := testCategory("Groceries", "600")
	transport := testCategory("Transport", "150")
	categories := []*entity.BudgetCategory{groceries, transport}

	t.Run("sums absolute amounts per category", func(t *testing.T) {
		transactions := []*entity.Transaction{
			testTransaction(&groceries.ID, date(2025, time.January, 5), "-100"),
			testTransaction(&groceries.ID, date(2025, time.January, 9), "250"),
		}

		spend := aggregateCategorySpend(period, categories, transactions)

		if got := spend[groceries.ID].Spent; !got.Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected spent 350, got %s", got)
		}
		if got := len(spend[groceries.ID].Transactions); got != 2 {
			t.Errorf("expected 2 matched transactions, got %d", got)
		}
	})

	t.Run("stored sign does not change the result", func(t *testing.T) {
		negative := aggregateCategorySpend(period, categories, []*entity.Transaction{
			testTransaction(&groceries.ID, date(2025, time.January, 5), "-350"),
		})
		positive := aggregateCategorySpend(period, categories, []*entity.Transaction{
			testTransaction(&groceries.ID, date(2025, time.January, 5), "350"),
		})

		if !negative[groceries.ID].Spent.Equal(positive[groceries.ID].Spent) {
			t.Errorf("expected identical spend for -350 and 350, got %s and %s",
				negative[groceries.ID].Spent, positive[groceries.ID].Spent)
		}
	})

	t.Run("categories without transactions get a zero entry", func(t *testing.T) {
		spend := aggregateCategorySpend(period, categories, nil)

		entry, ok := spend[transport.ID]
		if !ok {
			t.Fatal("expected an entry for the category with no transactions")
		}
		if !entry.Spent.IsZero() {
			t.Errorf("expected zero spend, got %s", entry.Spent)
		}
		if !entry.PeriodBudget.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected pro-rated budget 70, got %s", entry.PeriodBudget)
		}
	})

	t.Run("uncategorized transactions are ignored", func(t *testing.T) {
		spend := aggregateCategorySpend(period, categories, []*entity.Transaction{
			testTransaction(nil, date(2025, time.January, 5), "-999"),
		})

		if !spend[groceries.ID].Spent.IsZero() || !spend[transport.ID].Spent.IsZero() {
			t.Error("expected uncategorized transaction to contribute to no category")
		}
	})

	t.Run("transactions for unknown categories are ignored", func(t *testing.T) {
		inactiveID := uuid.New()
		spend := aggregateCategorySpend(period, categories, []*entity.Transaction{
			testTransaction(&inactiveID, date(2025, time.January, 5), "-80"),
		})

		if _, ok := spend[inactiveID]; ok {
			t.Error("expected no entry for a category outside the active set")
		}
	})
}

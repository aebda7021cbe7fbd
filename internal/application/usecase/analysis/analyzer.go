// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// maxBiggestTransactions is how many of a period's largest transactions are
// reported.
const maxBiggestTransactions = 10

var oneHundred = decimal.NewFromInt(100)

// CategoryOverspending is the per-category result for one analyzed period.
// Only categories that actually overspent are retained in a period's results.
type CategoryOverspending struct {
	CategoryID           uuid.UUID
	Name                 string
	Color                string
	BudgetAmount         decimal.Decimal
	Spent                decimal.Decimal
	Overspent            decimal.Decimal
	OverspentPercentage  decimal.Decimal
	MatchingTransactions []*entity.Transaction
}

// OverspendingPeriod is the period-level result: totals across all active
// categories, the overspending categories ranked worst first, and the
// period's largest transactions by magnitude.
type OverspendingPeriod struct {
	StartDate           time.Time
	EndDate             time.Time
	TotalBudget         decimal.Decimal
	TotalSpent          decimal.Decimal
	Overspent           decimal.Decimal
	Categories          []CategoryOverspending
	BiggestTransactions []*entity.Transaction
}

// analyzePeriod composes the aggregated category spend into the period's
// overspending result. Totals sum over all active categories, not just the
// overspending ones; per-category and period overspend are floored at zero.
func analyzePeriod(
	period valueobject.PayPeriod,
	categories []*entity.BudgetCategory,
	transactions []*entity.Transaction,
) OverspendingPeriod {
	spend := aggregateCategorySpend(period, categories, transactions)

	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	overspending := make([]CategoryOverspending, 0, len(categories))

	for _, cat := range categories {
		entry := spend[cat.ID]
		totalBudget = totalBudget.Add(entry.PeriodBudget)
		totalSpent = totalSpent.Add(entry.Spent)

		overspent := entry.Spent.Sub(entry.PeriodBudget)
		if !overspent.IsPositive() {
			continue
		}

		// Zero budget means any spend is infinite overshoot; report 0 rather
		// than dividing by zero.
		percentage := decimal.Zero
		if entry.PeriodBudget.IsPositive() {
			percentage = overspent.Div(entry.PeriodBudget).Mul(oneHundred)
		}

		overspending = append(overspending, CategoryOverspending{
			CategoryID:           cat.ID,
			Name:                 cat.Name,
			Color:                cat.Color,
			BudgetAmount:         entry.PeriodBudget,
			Spent:                entry.Spent,
			Overspent:            overspent,
			OverspentPercentage:  percentage,
			MatchingTransactions: entry.Transactions,
		})
	}

	sort.Slice(overspending, func(i, j int) bool {
		if !overspending[i].Overspent.Equal(overspending[j].Overspent) {
			return overspending[i].Overspent.GreaterThan(overspending[j].Overspent)
		}
		return overspending[i].CategoryID.String() < overspending[j].CategoryID.String()
	})

	totalOverspent := totalSpent.Sub(totalBudget)
	if totalOverspent.IsNegative() {
		totalOverspent = decimal.Zero
	}

	return OverspendingPeriod{
		StartDate:           period.StartDate,
		EndDate:             period.EndDate,
		TotalBudget:         totalBudget,
		TotalSpent:          totalSpent,
		Overspent:           totalOverspent,
		Categories:          overspending,
		BiggestTransactions: biggestTransactions(transactions),
	}
}

// biggestTransactions returns the period's transactions ranked by absolute
// amount descending, truncated to maxBiggestTransactions. Uncategorized
// transactions participate. The sort is stable so equal magnitudes keep the
// repository's date-descending order.
func biggestTransactions(transactions []*entity.Transaction) []*entity.Transaction {
	ranked := make([]*entity.Transaction, len(transactions))
	copy(ranked, transactions)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.Abs().GreaterThan(ranked[j].Amount.Abs())
	})

	if len(ranked) > maxBiggestTransactions {
		ranked = ranked[:maxBiggestTransactions]
	}
	return ranked
}

// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paytrack/backend/internal/domain/entity"
	"github.com/paytrack/backend/internal/domain/valueobject"
)

// daysPerMonth is the fixed month length used to pro-rate monthly allocations
// onto pay periods. Kept at 30 regardless of the calendar month.
var daysPerMonth = decimal.NewFromInt(30)

// categorySpend holds one category's pro-rated budget and actual spend within
// a single period.
type categorySpend struct {
	PeriodBudget decimal.Decimal
	Spent        decimal.Decimal
	Transactions []*entity.Transaction
}

// aggregateCategorySpend partitions the period's transactions by category and
// sums absolute spend per category. Spend is the magnitude of the stored
// amount: expenses recorded as -350 and as 350 contribute identically, since
// the sign convention of upstream sources is not assumed. Categories with no
// matching transactions still produce a zero-spend entry. Date filtering of
// the transaction slice is the repository's responsibility.
func aggregateCategorySpend(
	period valueobject.PayPeriod,
	categories []*entity.BudgetCategory,
	transactions []*entity.Transaction,
) map[uuid.UUID]*categorySpend {
	spend := make(map[uuid.UUID]*categorySpend, len(categories))
	for _, cat := range categories {
		spend[cat.ID] = &categorySpend{
			PeriodBudget: proRateMonthlyAmount(cat.AllocatedAmount, period.Days()),
			Spent:        decimal.Zero,
		}
	}

	for _, tx := range transactions {
		if tx.CategoryID == nil {
			continue
		}
		entry, ok := spend[*tx.CategoryID]
		if !ok {
			continue
		}
		entry.Spent = entry.Spent.Add(tx.Amount.Abs())
		entry.Transactions = append(entry.Transactions, tx)
	}

	return spend
}

// proRateMonthlyAmount scales a nominal monthly amount down to the fraction of
// a month the period covers: amount / 30 * daysInPeriod.
func proRateMonthlyAmount(monthly decimal.Decimal, daysInPeriod int) decimal.Decimal {
	return monthly.Div(daysPerMonth).Mul(decimal.NewFromInt(int64(daysInPeriod)))
}

// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// maxProblematicCategories is how many cross-period problem categories are
// reported.
const maxProblematicCategories = 5

// ProblematicCategory aggregates one category's overspending across every
// period it appeared in. Occurrences counts only periods where the category
// actually overspent; a period with no overshoot contributes nothing.
type ProblematicCategory struct {
	CategoryID       uuid.UUID
	Name             string
	Color            string
	TotalOverspent   decimal.Decimal
	AverageOverspent decimal.Decimal
	Occurrences      int
}

// OverspendingSummary is the cross-period rollup.
type OverspendingSummary struct {
	TotalOverspent        decimal.Decimal
	AverageOverspent      decimal.Decimal
	PeriodsAnalyzed       int
	ProblematicCategories []ProblematicCategory
}

// summarizeOverspending rolls the analyzed periods into aggregate statistics:
// total and average overspend, plus the categories most severely over budget
// ranked by cumulative overspend (ties by category id for determinism).
func summarizeOverspending(periods []OverspendingPeriod) (*OverspendingSummary, error) {
	if len(periods) == 0 {
		return nil, domainerror.NewAnalysisError(
			domainerror.ErrCodeNoPeriodsToSummarize,
			"cannot summarize zero analyzed periods",
			domainerror.ErrNoPeriodsToSummarize,
		)
	}

	totalOverspent := decimal.Zero
	running := make(map[uuid.UUID]*ProblematicCategory)

	for _, period := range periods {
		totalOverspent = totalOverspent.Add(period.Overspent)

		for _, cat := range period.Categories {
			entry, ok := running[cat.CategoryID]
			if !ok {
				entry = &ProblematicCategory{
					CategoryID:     cat.CategoryID,
					Name:           cat.Name,
					Color:          cat.Color,
					TotalOverspent: decimal.Zero,
				}
				running[cat.CategoryID] = entry
			}
			entry.TotalOverspent = entry.TotalOverspent.Add(cat.Overspent)
			entry.Occurrences++
		}
	}

	ranked := make([]ProblematicCategory, 0, len(running))
	for _, entry := range running {
		entry.AverageOverspent = entry.TotalOverspent.Div(decimal.NewFromInt(int64(entry.Occurrences)))
		ranked = append(ranked, *entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].TotalOverspent.Equal(ranked[j].TotalOverspent) {
			return ranked[i].TotalOverspent.GreaterThan(ranked[j].TotalOverspent)
		}
		return ranked[i].CategoryID.String() < ranked[j].CategoryID.String()
	})
	if len(ranked) > maxProblematicCategories {
		ranked = ranked[:maxProblematicCategories]
	}

	return &OverspendingSummary{
		TotalOverspent:        totalOverspent,
		AverageOverspent:      totalOverspent.Div(decimal.NewFromInt(int64(len(periods)))),
		PeriodsAnalyzed:       len(periods),
		ProblematicCategories: ranked,
	}, nil
}

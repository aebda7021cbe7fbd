// Package analysis contains the pay-period overspending analysis use cases.
package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/paytrack/backend/internal/domain/error"
)

func summaryPeriod(overspent string, categories ...CategoryOverspending) OverspendingPeriod {
	return OverspendingPeriod{
		Overspent:  decimal.RequireFromString(overspent),
		Categories: categories,
	}
}

func overspentCategory(id uuid.UUID, name, overspent string) CategoryOverspending {
	return CategoryOverspending{
		CategoryID: id,
		Name:       name,
		Overspent:  decimal.RequireFromString(overspent),
	}
}

func TestSummarizeOverspending_EmptyInput(t *testing.T) {
	_, err := summarizeOverspending(nil)
	if err == nil {
		t.Fatal("expected error for zero periods")
	}
	if !errors.Is(err, domainerror.ErrNoPeriodsToSummarize) {
		t.Errorf("expected ErrNoPeriodsToSummarize, got %v", err)
	}

	var analysisErr *domainerror.AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("expected AnalysisError, got %T", err)
	}
	if analysisErr.Code != domainerror.ErrCodeNoPeriodsToSummarize {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeNoPeriodsToSummarize, analysisErr.Code)
	}
}

func TestSummarizeOverspending_Totals(t *testing.T) {
	groceries := uuid.New()
	dining := uuid.New()

	summary, err := summarizeOverspending([]OverspendingPeriod{
		summaryPeriod("70",
			overspentCategory(groceries, "Groceries", "70"),
			overspentCategory(dining, "Dining", "50"),
		),
		summaryPeriod("0"),
		summaryPeriod("30", overspentCategory(groceries, "Groceries", "30")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.PeriodsAnalyzed != 3 {
		t.Errorf("expected 3 periods analyzed, got %d", summary.PeriodsAnalyzed)
	}
	if !summary.TotalOverspent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected total overspent 100, got %s", summary.TotalOverspent)
	}

	// 100 over 3 periods.
	wantAverage := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))
	if !summary.AverageOverspent.Equal(wantAverage) {
		t.Errorf("expected average %s, got %s", wantAverage, summary.AverageOverspent)
	}
}

func TestSummarizeOverspending_ProblematicCategories(t *testing.T) {
	groceries := uuid.New()
	dining := uuid.New()

	summary, err := summarizeOverspending([]OverspendingPeriod{
		summaryPeriod("120",
			overspentCategory(groceries, "Groceries", "70"),
			overspentCategory(dining, "Dining", "50"),
		),
		summaryPeriod("30", overspentCategory(groceries, "Groceries", "30")),
		summaryPeriod("0"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.ProblematicCategories) != 2 {
		t.Fatalf("expected 2 problematic categories, got %d", len(summary.ProblematicCategories))
	}

	worst := summary.ProblematicCategories[0]
	if worst.CategoryID != groceries {
		t.Fatalf("expected Groceries ranked first, got %s", worst.Name)
	}
	if !worst.TotalOverspent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected cumulative overspent 100, got %s", worst.TotalOverspent)
	}
	if worst.Occurrences != 2 {
		t.Errorf("expected 2 occurrences, got %d", worst.Occurrences)
	}
	// Average is per overspending occurrence, not per analyzed period.
	if !worst.AverageOverspent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected average 50, got %s", worst.AverageOverspent)
	}

	second := summary.ProblematicCategories[1]
	if second.CategoryID != dining || second.Occurrences != 1 {
		t.Errorf("expected Dining with 1 occurrence, got %s with %d", second.Name, second.Occurrences)
	}
}

func TestSummarizeOverspending_PeriodFloorDoesNotHideCategories(t *testing.T) {
	// A period whose total nets to zero still contributes its overspending
	// categories to the cross-period ranking.
	dining := uuid.New()

	summary, err := summarizeOverspending([]OverspendingPeriod{
		summaryPeriod("0", overspentCategory(dining, "Dining", "50")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.TotalOverspent.IsZero() {
		t.Errorf("expected summary total 0, got %s", summary.TotalOverspent)
	}
	if len(summary.ProblematicCategories) != 1 {
		t.Fatalf("expected 1 problematic category, got %d", len(summary.ProblematicCategories))
	}
	if !summary.ProblematicCategories[0].TotalOverspent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected category overspent 50, got %s", summary.ProblematicCategories[0].TotalOverspent)
	}
}

func TestSummarizeOverspending_RankingAndTruncation(t *testing.T) {
	t.Run("keeps only the top five categories", func(t *testing.T) {
		categories := make([]CategoryOverspending, 0, 7)
		for i := 1; i <= 7; i++ {
			categories = append(categories, overspentCategory(
				uuid.New(),
				fmt.Sprintf("Category %d", i),
				fmt.Sprintf("%d", i*10),
			))
		}

		summary, err := summarizeOverspending([]OverspendingPeriod{summaryPeriod("280", categories...)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(summary.ProblematicCategories) != maxProblematicCategories {
			t.Fatalf("expected %d categories, got %d", maxProblematicCategories, len(summary.ProblematicCategories))
		}
		if !summary.ProblematicCategories[0].TotalOverspent.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected worst category overspent 70, got %s", summary.ProblematicCategories[0].TotalOverspent)
		}
		if !summary.ProblematicCategories[4].TotalOverspent.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected fifth category overspent 30, got %s", summary.ProblematicCategories[4].TotalOverspent)
		}
	})

	t.Run("equal totals break ties by category id", func(t *testing.T) {
		first := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		second := uuid.MustParse("00000000-0000-0000-0000-000000000002")

		summary, err := summarizeOverspending([]OverspendingPeriod{
			summaryPeriod("80",
				overspentCategory(second, "Second", "40"),
				overspentCategory(first, "First", "40"),
			),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.ProblematicCategories[0].CategoryID != first {
			t.Errorf("expected the lower id first on a tie, got %s", summary.ProblematicCategories[0].CategoryID)
		}
	})
}

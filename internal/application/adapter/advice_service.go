// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// AdviceRequest represents an overspending summary prepared for advice generation.
type AdviceRequest struct {
	PayFrequency     string
	PeriodsAnalyzed  int
	TotalOverspent   string
	AverageOverspent string
	Categories       []*CategoryForAdvice
}

// CategoryForAdvice represents per-category overspending data for AI processing.
type CategoryForAdvice struct {
	Name             string
	TotalOverspent   string
	AverageOverspent string
	Occurrences      int
}

// AdviceResult represents the AI's savings advice.
type AdviceResult struct {
	Advice string
}

// AdviceService defines the interface for AI savings-advice operations.
type AdviceService interface {
	// GenerateSavingsAdvice turns an overspending summary into actionable advice.
	GenerateSavingsAdvice(ctx context.Context, request *AdviceRequest) (*AdviceResult, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}

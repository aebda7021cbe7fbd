// Package advice contains the AI savings-advice use cases.
package advice

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// classifyProviderError converts an AI provider error to a coded AdviceError
// with a user-facing message. Already-coded errors pass through unchanged.
func classifyProviderError(err error) *domainerror.AdviceError {
	var adviceErr *domainerror.AdviceError
	if errors.As(err, &adviceErr) {
		return adviceErr
	}

	errStr := strings.ToLower(err.Error())

	// Check for timeout/cancellation (context errors)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceGenerationFailed,
			"advice generation timed out, try again with fewer periods",
			err,
		)
	}

	// Check for rate limiting
	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceRateLimited,
			"advice request limit reached, wait a few minutes and try again",
			err,
		)
	}

	// Check for authentication errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") {
		return domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceNotConfigured,
			"advice service credentials were rejected",
			err,
		)
	}

	// Check for network/connection errors
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceGenerationFailed,
			"advice service is temporarily unavailable, try again later",
			err,
		)
	}

	// Check for responses we could not use
	if errors.Is(err, domainerror.ErrAdviceEmptyResponse) ||
		strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceEmptyResponse,
			"advice service returned an unusable response, try again",
			err,
		)
	}

	// Default to a generic generation failure
	return domainerror.NewAdviceError(
		domainerror.ErrCodeAdviceGenerationFailed,
		"advice generation failed, try again",
		err,
	)
}

// Package advice contains the AI savings-advice use cases.
package advice

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/paytrack/backend/internal/domain/error"
)

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AdviceErrorCode
	}{
		// Timeout/cancellation errors
		{
			name:         "context deadline exceeded",
			err:          context.DeadlineExceeded,
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
		{
			name:         "context canceled",
			err:          context.Canceled,
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
		// Rate limiting errors
		{
			name:         "rate limit error",
			err:          errors.New("rate limit exceeded"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
		},
		{
			name:         "quota error",
			err:          errors.New("quota exceeded"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
		},
		{
			name:         "429 status code error",
			err:          errors.New("HTTP 429: too many requests"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
		},
		{
			name:         "resource exhausted error",
			err:          errors.New("resource exhausted"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
		},
		// Authentication errors
		{
			name:         "401 unauthorized",
			err:          errors.New("401 unauthorized"),
			expectedCode: domainerror.ErrCodeAdviceNotConfigured,
		},
		{
			name:         "403 forbidden",
			err:          errors.New("403 forbidden"),
			expectedCode: domainerror.ErrCodeAdviceNotConfigured,
		},
		{
			name:         "invalid api key",
			err:          errors.New("invalid api key"),
			expectedCode: domainerror.ErrCodeAdviceNotConfigured,
		},
		{
			name:         "authentication error",
			err:          errors.New("authentication failed"),
			expectedCode: domainerror.ErrCodeAdviceNotConfigured,
		},
		// Network/connection errors
		{
			name:         "connection refused",
			err:          errors.New("connection refused"),
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
		{
			name:         "dial error",
			err:          errors.New("dial tcp: no route to host"),
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
		{
			name:         "503 status code error",
			err:          errors.New("HTTP 503: service unavailable"),
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
		// Unusable responses
		{
			name:         "empty response sentinel",
			err:          domainerror.ErrAdviceEmptyResponse,
			expectedCode: domainerror.ErrCodeAdviceEmptyResponse,
		},
		{
			name:         "parse error",
			err:          errors.New("failed to parse response"),
			expectedCode: domainerror.ErrCodeAdviceEmptyResponse,
		},
		{
			name:         "decode error",
			err:          errors.New("decode error"),
			expectedCode: domainerror.ErrCodeAdviceEmptyResponse,
		},
		// Unknown errors
		{
			name:         "unknown error",
			err:          errors.New("something unexpected happened"),
			expectedCode: domainerror.ErrCodeAdviceGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyProviderError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}

			if result.Message == "" {
				t.Error("expected non-empty message")
			}

			// The original provider error stays reachable for diagnostics
			if !errors.Is(result, tt.err) {
				t.Errorf("expected classified error to wrap %v", tt.err)
			}
		})
	}
}

func TestClassifyProviderError_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AdviceErrorCode
	}{
		{
			name:         "uppercase rate limit",
			err:          errors.New("RATE LIMIT exceeded"),
			expectedCode: domainerror.ErrCodeAdviceRateLimited,
		},
		{
			name:         "mixed case unauthorized",
			err:          errors.New("Unauthorized access"),
			expectedCode: domainerror.ErrCodeAdviceNotConfigured,
		},
		{
			name:         "uppercase json",
			err:          errors.New("Invalid JSON format"),
			expectedCode: domainerror.ErrCodeAdviceEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyProviderError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}
		})
	}
}

func TestClassifyProviderError_PassThrough(t *testing.T) {
	coded := domainerror.NewAdviceError(
		domainerror.ErrCodeAdviceRateLimited,
		"already classified",
		errors.New("underlying"),
	)

	result := classifyProviderError(coded)

	if result != coded {
		t.Error("expected coded errors to pass through unchanged")
	}
}

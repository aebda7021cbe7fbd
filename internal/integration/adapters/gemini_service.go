// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/paytrack/backend/internal/application/adapter"
	domainerror "github.com/paytrack/backend/internal/domain/error"
)

// GeminiService implements the AdviceService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateSavingsAdvice turns an overspending summary into actionable advice.
func (s *GeminiService) GenerateSavingsAdvice(ctx context.Context, request *adapter.AdviceRequest) (*adapter.AdviceResult, error) {
	if !s.IsAvailable() {
		return nil, domainerror.ErrAdviceServiceNotConfigured
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	// Get the model
	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)

	// Build the prompt
	prompt := s.buildPrompt(request)

	// Generate response
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	// Parse response
	advice, err := s.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	return &adapter.AdviceResult{Advice: advice}, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(request *adapter.AdviceRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a personal finance coach. The user budgets per spending category and gets paid on a fixed schedule, so their spending is tracked per pay period rather than per calendar month. Analyze their overspending report and give practical savings advice.

OVERSPENDING REPORT:
`)

	sb.WriteString(fmt.Sprintf("- Pay frequency: %s\n", request.PayFrequency))
	sb.WriteString(fmt.Sprintf("- Pay periods analyzed: %d\n", request.PeriodsAnalyzed))
	sb.WriteString(fmt.Sprintf("- Total overspent across all periods: %s\n", request.TotalOverspent))
	sb.WriteString(fmt.Sprintf("- Average overspent per period: %s\n", request.AverageOverspent))

	sb.WriteString("\nPROBLEM CATEGORIES (worst first):\n")
	if len(request.Categories) > 0 {
		for _, cat := range request.Categories {
			sb.WriteString(fmt.Sprintf("- %s: overspent %s in total, %s per period on average, over budget in %d of %d periods\n",
				cat.Name, cat.TotalOverspent, cat.AverageOverspent, cat.Occurrences, request.PeriodsAnalyzed))
		}
	} else {
		sb.WriteString("(no category exceeded its budget)\n")
	}

	sb.WriteString(`
GUIDELINES:
- Address the worst categories first
- Suggest concrete, achievable changes sized to the amounts in the report
- Frame advice around the user's pay periods, not calendar months
- Never invent numbers that are not in the report
- If no category exceeded its budget, congratulate the user and suggest how to keep it that way

RESPONSE FORMAT: Plain text only, 2 to 3 short paragraphs. No markdown, no headings, no bullet lists.
`)

	return sb.String()
}

// parseResponse extracts the advice text from the Gemini response.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini: %w", domainerror.ErrAdviceEmptyResponse)
	}

	// Concatenate the text parts of the first candidate
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	// Clean the response (remove markdown code blocks if present)
	advice := sb.String()
	advice = strings.TrimPrefix(advice, "```")
	advice = strings.TrimSuffix(advice, "```")
	advice = strings.TrimSpace(advice)

	if advice == "" {
		return "", fmt.Errorf("no text content in response: %w", domainerror.ErrAdviceEmptyResponse)
	}

	return advice, nil
}

// Package gemini implements chintai.Suggester using Google Gemini.
package gemini

import (
	"context"

	"github.com/onobori/chintai"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxOutputTokens caps the reply length.
const DefaultMaxOutputTokens = 1024

// Ensure Suggester implements chintai.Suggester at compile time.
var _ chintai.Suggester = (*Suggester)(nil)

// Suggester implements chintai.Suggester using Google Gemini.
type Suggester struct {
	client *genai.Client
	model  string
}

// NewSuggester creates a new Suggester. An empty model selects DefaultModel.
func NewSuggester(client *genai.Client, model string) *Suggester {
	if model == "" {
		model = DefaultModel
	}
	return &Suggester{client: client, model: model}
}

// Suggest requests stations reachable from station within minutes.
func (s *Suggester) Suggest(ctx context.Context, station string, minutes int) (*chintai.Suggestion, error) {
	if err := chintai.ValidateSuggestRequest(station, minutes); err != nil {
		return nil, err
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: chintai.SuggestionPrompt(station, minutes)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return chintai.SuggestionFailure("API request failed: %v", err), nil
	}
	if result == nil || len(result.Candidates) == 0 {
		return chintai.SuggestionFailure("no candidates in response"), nil
	}

	return chintai.SuggestionFromReply(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for suggestion requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: chintai.SuggestionSystemPrompt}},
		},
		Temperature:     &temp,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

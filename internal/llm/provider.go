package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ehiller1/dementia/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Coach generates a coaching note for a finished training report
	Coach(ctx context.Context, req CoachRequest) (*CoachResponse, error)
}

// CoachRequest contains the input for coaching-note generation
type CoachRequest struct {
	// Report is the finished analysis. Scores are already final; the
	// LLM output never feeds back into them.
	Report model.TrainingReport

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CoachResponse contains the generated coaching note
type CoachResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (e.g. a local Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables coaching and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// BuildPrompt constructs the coaching prompt from a finished report.
// The prompt restates findings the rule engine already produced; the
// LLM rephrases them for the caregiver and must not introduce new
// assessments.
func BuildPrompt(report model.TrainingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are writing a short, warm coaching note for a family caregiver of a person with dementia.

RULES:
1. Base the note ONLY on the findings below. Do not invent new observations.
2. Never shame the caregiver. Lead with what went well.
3. Do not mention scores or grades; translate them into plain guidance.
4. Keep it to 4-6 sentences.

FINDINGS:
Overall grade: %s
Dementia stage: %s
`, report.Grade, report.DementiaStage)

	if len(report.Strengths) > 0 {
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(report.Strengths, "; "))
	}

	for _, p := range model.Principles() {
		ps := report.PrincipleScores[p.Key]
		fmt.Fprintf(&b, "%s: %.2f\n", p.Title, ps.Score)
		for _, e := range ps.Evidence {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}

	for i, v := range report.Violations {
		if i >= 5 {
			fmt.Fprintf(&b, "... and %d more findings\n", len(report.Violations)-5)
			break
		}
		fmt.Fprintf(&b, "Issue (turn %d): %s. Suggested: %s\n", v.TurnNumber, v.Issue, v.Correction)
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&b, "Top recommendation: %s - %s\n",
			report.Recommendations[0].Title, report.Recommendations[0].Action)
	}

	return b.String()
}

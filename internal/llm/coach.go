package llm

import (
	"context"
	"fmt"

	"github.com/ehiller1/dementia/internal/model"
)

// Coach wraps a provider and produces the optional CoachingSummary
// attached to a training report. It is created only when a provider is
// configured; a nil Coach is valid and does nothing.
type Coach struct {
	provider Provider
	config   Config
}

// NewCoach creates a coach from configuration. Returns nil when no
// provider is configured.
func NewCoach(config Config) (*Coach, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Coach{provider: provider, config: config}, nil
}

// IsEnabled reports whether coaching is active
func (c *Coach) IsEnabled() bool {
	return c != nil && c.provider != nil
}

// Generate produces a coaching summary for a finished report. The
// report's scores are inputs only; nothing here feeds back into them.
func (c *Coach) Generate(ctx context.Context, report model.TrainingReport) (*model.CoachingSummary, error) {
	if !c.IsEnabled() {
		return nil, nil
	}

	resp, err := c.provider.Coach(ctx, CoachRequest{
		Report:    report,
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate coaching note: %w", err)
	}

	return &model.CoachingSummary{
		Enabled:   true,
		Provider:  c.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}

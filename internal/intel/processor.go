package intel

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intel-engine/internal/config"
	"github.com/sells-group/intel-engine/internal/model"
	"github.com/sells-group/intel-engine/pkg/anthropic"
)

// ErrMissingAPIKey is returned by New when no credential is configured.
var ErrMissingAPIKey = eris.New("intel: anthropic api key is required")

// Processor converts raw customer interaction records into an
// IntelligenceReport. It is stateless apart from its held configuration and
// client, so concurrent ProcessCustomerData calls on one instance are
// independent.
type Processor struct {
	cfg    config.AnthropicConfig
	client anthropic.Client
}

// Option configures a Processor.
type Option func(*Processor)

// WithClient injects a completion client, replacing the SDK-backed default.
func WithClient(c anthropic.Client) Option {
	return func(p *Processor) {
		p.client = c
	}
}

// New creates a Processor. Construction fails synchronously, before any
// network call, when no API key is configured and no client is injected.
func New(cfg config.AnthropicConfig, opts ...Option) (*Processor, error) {
	p := &Processor{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		if cfg.Key == "" {
			return nil, ErrMissingAPIKey
		}
		p.client = anthropic.NewClient(cfg.Key)
	}

	return p, nil
}

// ProcessCustomerData runs the full pipeline for one customer record:
// normalization, one extraction call, deterministic aggregation, and report
// assembly. An upstream completion-service error fails the call; a malformed
// completion body does not — the report is returned with empty insight and
// opportunity lists.
func (p *Processor) ProcessCustomerData(ctx context.Context, data model.CustomerData) (*model.IntelligenceReport, error) {
	start := time.Now()
	log := zap.L().With(zap.String("company", data.CompanyName))
	log.Info("intel: processing customer data",
		zap.Int("meetings", len(data.Meetings)),
		zap.Int("emails", len(data.Emails)),
		zap.Int("tickets", len(data.SupportTickets)),
	)

	normalized := NormalizeCustomerData(data)

	insights, err := p.extractInsights(ctx, normalized)
	if err != nil {
		return nil, eris.Wrap(err, "intel: process customer data")
	}

	opportunities := IdentifyOpportunities(insights, normalized)
	smap := MapStakeholders(normalized)

	report := assembleReport(normalized, insights, opportunities, smap)

	log.Info("intel: report assembled",
		zap.String("report_id", report.ID),
		zap.Int("insights", len(report.Insights)),
		zap.Int("opportunities", len(report.Opportunities)),
		zap.Int("stakeholders", report.StakeholderMap.Total()),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return report, nil
}

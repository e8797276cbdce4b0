package engine

import (
	"log/slog"

	"github.com/spektr-org/finlit/province"
	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// DefaultReferenceYear is the year ages are computed against.
const DefaultReferenceYear = 2025

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger        *slog.Logger
	ReferenceYear int
	Normalizer    *province.Normalizer
	Scale         float64 // target scale for literacy scores
}

// WithLogger routes engine diagnostics to l. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithReferenceYear sets the year used for age bucketing.
func WithReferenceYear(year int) Option {
	return func(c *config) {
		if year > 0 {
			c.ReferenceYear = year
		}
	}
}

// WithNormalizer replaces the province normalizer. By default Execute
// builds one from the snapshot's boundary names.
func WithNormalizer(n *province.Normalizer) Option {
	return func(c *config) {
		if n != nil {
			c.Normalizer = n
		}
	}
}

// WithScale sets the target scale for literacy scores (default 4).
func WithScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.Scale = scale
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:        slog.New(slog.DiscardHandler),
		ReferenceYear: DefaultReferenceYear,
		Scale:         scoring.DefaultScale,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// normalizerFor fills in the default normalizer for a snapshot.
func (c *config) normalizerFor(boundary []string) {
	if c.Normalizer == nil {
		c.Normalizer = province.New(province.WithBoundaryNames(boundary))
	}
}

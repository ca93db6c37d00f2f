package flowexpr

import (
	"fmt"

	"github.com/randalmurphal/flowexpr/pkg/flowexpr/config"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/history"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/observability"
)

// FromConfig builds engine options from a loaded configuration.
//
// A non-empty history_path opens (or creates) a SQLite history store at
// that path; the caller owns its lifetime through the returned options'
// engine. See the config package for the recognized keys.
//
// Example:
//
//	cfg, err := config.FromFile("engine.yaml")
//	if err != nil { ... }
//	opts, err := flowexpr.FromConfig(cfg)
//	if err != nil { ... }
//	engine := flowexpr.New(opts...)
func FromConfig(cfg config.Config) ([]Option, error) {
	opts := []Option{
		WithMaxDepth(cfg.Int("max_depth", DefaultMaxDepth)),
	}

	if path := cfg.String("history_path", ""); path != "" {
		store, err := history.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		opts = append(opts, WithHistory(store))
	}

	if cfg.Bool("tracing", false) {
		opts = append(opts, WithSpans(observability.NewSpanManager()))
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}

	return opts, nil
}

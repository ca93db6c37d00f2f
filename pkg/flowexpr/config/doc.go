// Package config loads flowexpr engine settings from YAML or JSON.
//
// Settings are a flat map with type-safe accessors:
//
//	cfg, err := config.FromFile("engine.yaml")
//	depth := cfg.Int("max_depth", 64)
//	trace := cfg.Bool("tracing", false)
//
// flowexpr.FromConfig turns a loaded Config into engine options:
//
//	opts, err := flowexpr.FromConfig(cfg)
//	engine := flowexpr.New(opts...)
//
// Recognized keys:
//
//	max_depth     int     nested interpolation limit
//	history_path  string  SQLite file for evaluation history ("" = off)
//	tracing       bool    OTel spans around evaluations
//	metrics       bool    OTel metrics for evaluations
package config

package app

import "errors"

// Config holds everything one App instance needs to run.
type Config struct {
	Extensions []string // extension names to load whole
	Modules    []string // individual module paths to load
	Targets    []string // pipeline files, directories, or glob patterns

	JSON       bool   // machine-readable NDJSON records instead of text
	ExportPath string // write the rule catalog here and exit; "-" is stdout
	Watch      bool   // re-run on pipeline document changes

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates a Config. At least one validation target is required
// unless the run only exports the rule catalog.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ExportPath == "" && len(cfg.Extensions) == 0 && len(cfg.Modules) == 0 && len(cfg.Targets) == 0 {
		return nil, errors.New("nothing to validate: provide an extension, a module, or a pipeline document")
	}
	if cfg.Watch && len(cfg.Targets) == 0 {
		return nil, errors.New("watch mode requires at least one pipeline document to watch")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}

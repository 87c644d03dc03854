package translator

import "github.com/erraggy/oasgraph/preprocess"

// Option configures a Translator. Options are applied by New and Translate.
type Option func(*config)

// config holds translator configuration applied via options.
type config struct {
	logger  preprocess.Logger
	viewers bool
	strict  bool
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:  preprocess.NopLogger{},
		viewers: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the diagnostics logger. The default discards all output.
func WithLogger(logger preprocess.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithViewersDisabled skips viewer creation entirely. Authenticated
// operations are installed as plain root fields instead; their resolvers
// then see no security context.
func WithViewersDisabled() Option {
	return func(cfg *config) {
		cfg.viewers = false
	}
}

// WithStrictWarnings turns collected warnings into an error after schema
// assembly. Useful in CI where a degraded translation should fail the build.
func WithStrictWarnings() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

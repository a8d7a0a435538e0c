package log

// Option is a functional option that transforms a logger configuration.
// Options are applied in order, so later options win.
type Option func(config) config

// apply folds the given options over cfg and returns the result.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

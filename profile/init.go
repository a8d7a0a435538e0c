package profile

// Config returns the complete set of profiler parameters.
// The zero value (a nil Config) is invalid; construct one with a literal
// closure or by chaining [WithMode], [WithPath], and [WithQuiet] over a
// base Config.
type Config func() (mode, path string, quiet bool)

// Start initializes the profiler described by the Config and returns a
// handle for stopping it.
//
// Start returns a no-op handle when the binary was built without the
// [Tag] build tag, or when no profiling mode is configured.
// The returned handle's Stop method is always safe to call.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return noop{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option that selects the profiling mode.
// Unrecognized modes leave the profiler disabled.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath returns a functional option that sets the directory where
// profile data is written.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet returns a functional option that suppresses the profiler's
// startup and shutdown messages.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type noop struct{}

func (noop) Stop() {}

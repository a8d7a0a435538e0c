// Package cmd implements the linelog subcommands: rendering records,
// validating and formatting template sets, listing known definitions, and
// initializing configuration and template files.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"
)

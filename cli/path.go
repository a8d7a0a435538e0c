package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/linelog/pkg"
)

// baseConfig is the base name of the configuration file and section.
const baseConfig = "config"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// debugBin matches the default output name of the dlv debugger.
var debugBin = regexp.MustCompile(`^__debug_bin\d+$`)

// basePrefix returns the identifier used to construct the configuration
// and cache directory paths.
//
// By default, basePrefix is the base name of the executable file with its
// extension and any leading dots removed. Debugger build output named
// "__debug_bin<pid>" is replaced with the program name.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = strings.TrimLeft(id, ".")

		if debugBin.MatchString(id) {
			return pkg.Name
		}

		return id
	},
)

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// userDir resolves the base directory with lookup, or the named
// dot-directory when the lookup fails, and appends the program prefix.
func userDir(lookup func() (string, error), name string) string {
	dir, err := lookup()
	if err != nil {
		dir = fallbackDir(name)
	}

	return filepath.Join(dir, basePrefix())
}

// fallbackDir returns the named dot-directory under the user's home
// directory, the working directory when no home is known, or "." as a last
// resort.
func fallbackDir(name string) string {
	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, name)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	return dir
}

// configPath joins path elements onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	err := os.MkdirAll(configDir(), defaultDirMode)
	if err != nil {
		return err
	}

	return os.MkdirAll(cacheDir(), defaultDirMode)
}

package tmpl

import (
	"embed"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// builtinSources embeds the preset template directories.
//
//go:embed templates
var builtinSources embed.FS

// builtinRoot exposes the embedded presets rooted at one directory per
// template name.
//
//nolint:gochecknoglobals
var builtinRoot = sync.OnceValue(
	func() fs.FS {
		sub, err := fs.Sub(builtinSources, "templates")
		if err != nil {
			panic("internal error: embedded templates unavailable")
		}

		return sub
	},
)

// BuiltinFS returns the embedded preset template tree, one directory per
// builtin name. It backs template scaffolding and is read-only.
func BuiltinFS() fs.FS {
	return builtinRoot()
}

// Loader produces a template set on first use.
type Loader func() (*Set, error)

// entry caches a loader's single invocation. Both success and failure are
// retained, so a registered template compiles at most once per process.
type entry struct {
	loader Loader
	set    *Set
	err    error
	once   sync.Once
}

func (e *entry) load() (*Set, error) {
	e.once.Do(func() {
		e.set, e.err = e.loader()
	})

	return e.set, e.err
}

// builtins holds the embedded preset templates, compiled on first lookup.
//
//nolint:gochecknoglobals
var builtins = map[string]*entry{
	"basic":     {loader: builtinLoader("basic")},
	"default":   {loader: builtinLoader("default")},
	"none":      {loader: builtinLoader("none")},
	"precommit": {loader: builtinLoader("precommit")},
}

// builtinLoader compiles one embedded preset directory.
func builtinLoader(name string) Loader {
	return func() (*Set, error) {
		sub, err := fs.Sub(builtinRoot(), name)
		if err != nil {
			return nil, err
		}

		return loadFS(sub, name)
	}
}

// registry holds custom template loaders added with Register.
//
//nolint:gochecknoglobals
var registry sync.Map // map[string]*entry

// dirCache holds sets loaded from template directories, keyed by cleaned
// path. Only successful loads are cached, so a fixed template can be
// loaded again without restarting the process.
//
//nolint:gochecknoglobals
var dirCache sync.Map // map[string]*Set

// Register makes a named template available to [Lookup]. The loader runs
// at most once; its result, success or failure, is cached. Registering a
// name again replaces the previous loader, and registered names shadow
// builtin presets.
func Register(name string, loader Loader) {
	registry.Store(name, &entry{loader: loader})
}

// Lookup returns the named template set, consulting registered loaders
// first and builtin presets second.
func Lookup(name string) (*Set, error) {
	if v, ok := registry.Load(name); ok {
		return v.(*entry).load()
	}

	if e, ok := builtins[name]; ok {
		return e.load()
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Resolve returns the template set for a name or filesystem path.
//
// An argument naming an existing directory loads as a custom template
// directory and is cached by its cleaned path; anything else resolves
// through [Lookup]. This is the single construction surface behind the
// "template name or path" configuration setting.
func Resolve(nameOrPath string) (*Set, error) {
	info, err := os.Stat(nameOrPath)
	if err != nil || !info.IsDir() {
		return Lookup(nameOrPath)
	}

	clean := filepath.Clean(nameOrPath)

	if v, ok := dirCache.Load(clean); ok {
		return v.(*Set), nil
	}

	set, err := LoadDir(clean)
	if err != nil {
		return nil, err
	}

	dirCache.Store(clean, set)

	return set, nil
}

// Names returns all available template names in sorted order: builtin
// presets plus any registered templates.
func Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool, len(builtins))
		names := make([]string, 0, len(builtins))

		for name := range builtins {
			seen[name] = true
			names = append(names, name)
		}

		registry.Range(func(k, _ any) bool {
			if name, ok := k.(string); ok && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}

			return true
		})

		slices.Sort(names)

		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

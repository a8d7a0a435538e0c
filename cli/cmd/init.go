package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/linelog/log"
	"github.com/ardnew/linelog/profile"
	"github.com/ardnew/linelog/tmpl"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// defaultFileMode is the default permission mode for generated files.
var defaultFileMode os.FileMode = 0o644

// defaultTreeMode is the default permission mode for scaffolded template
// directories.
var defaultTreeMode os.FileMode = 0o755

// Init generates starter configuration and template files.
type Init struct {
	Config   Config   `cmd:"" default:"withargs" help:"Write a configuration file with current flag values (default)."`
	Template Template `cmd:""                    help:"Scaffold a custom template directory from a built-in preset."`
}

// Config writes the default configuration file with current flag values.
type Config struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init config command.
func (c *Config) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config namespace undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !c.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := c.marshal(ctx)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, data, defaultFileMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// marshal renders the configuration document from current flag values.
// Flag names become document keys with hyphens replaced by underscores,
// matching the keys the configuration resolver looks up.
func (c *Config) marshal(ctx context.Context) ([]byte, error) {
	doc := yaml.MapSlice{{Key: ConfigIdentifier, Value: c.entries(ctx)}}

	return yaml.MarshalWithOptions(
		doc,
		yaml.Indent(defaultConfigIndent),
		yaml.IndentSequence(true),
	)
}

// entries collects the serializable flag values in declaration order.
func (c *Config) entries(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	var entries yaml.MapSlice

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx, flag)
		if val == nil {
			continue
		}

		entries = append(entries, yaml.MapItem{
			Key:   strings.ReplaceAll(flag.Name, "-", "_"),
			Value: val,
		})
	}

	return entries
}

// flagValue returns the YAML value for a CLI flag, or nil if unset or empty.
func flagValue(ktx *kong.Context, flag *kong.Flag) any {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		// Named string types (the log level and template flags among
		// them) and any remaining kinds serialize through fmt.Sprint.
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}

// Template scaffolds a custom template directory from a built-in preset.
//
// The preset's base.tpl and per-level override files are copied into the
// target directory, ready to edit and load back with any --template flag
// that accepts a directory path.
type Template struct {
	Name string `arg:"" help:"Target directory to create" name:"name"`

	From  string `default:"default" help:"Built-in preset to copy"`
	Force bool   `                  help:"Overwrite existing template files" short:"f"`
}

// Run executes the init template command.
func (t *Template) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if _, err := fs.Stat(tmpl.BuiltinFS(), t.From); err != nil {
		return ErrWriteTemplate.
			With(slog.String("preset", t.From)).
			Wrap(fmt.Errorf("%w: %q", tmpl.ErrNotFound, t.From))
	}

	sub, err := fs.Sub(tmpl.BuiltinFS(), t.From)
	if err != nil {
		return ErrWriteTemplate.
			With(slog.String("preset", t.From)).
			Wrap(err)
	}

	err = os.MkdirAll(t.Name, defaultTreeMode)
	if err != nil {
		return ErrWriteTemplate.
			With(slog.String("dir", t.Name)).
			Wrap(err)
	}

	err = fs.WalkDir(sub, ".", t.copyEntry(sub))
	if err != nil {
		return err
	}

	log.DebugContext(
		ctx,
		"initialized template directory",
		slog.String("path", t.Name),
		slog.String("preset", t.From),
	)

	return nil
}

// copyEntry copies one preset entry into the target directory.
func (t *Template) copyEntry(src fs.FS) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return ErrWriteTemplate.
				With(slog.String("file", path)).
				Wrap(err)
		}

		if d.IsDir() {
			if path == "." {
				return nil
			}

			err := os.MkdirAll(filepath.Join(t.Name, path), defaultTreeMode)
			if err != nil {
				return ErrWriteTemplate.
					With(slog.String("dir", path)).
					Wrap(err)
			}

			return nil
		}

		return t.writeFile(src, path)
	}
}

// writeFile copies one preset file, refusing to overwrite without --force.
func (t *Template) writeFile(src fs.FS, path string) error {
	dst := filepath.Join(t.Name, path)

	_, err := os.Stat(dst)
	if err == nil && !t.Force {
		return ErrWriteTemplate.
			With(slog.String("file", dst)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := fs.ReadFile(src, path)
	if err != nil {
		return ErrWriteTemplate.
			With(slog.String("file", path)).
			Wrap(err)
	}

	err = os.WriteFile(dst, data, defaultFileMode)
	if err != nil {
		return ErrWriteTemplate.
			With(slog.String("file", dst)).
			Wrap(err)
	}

	return nil
}

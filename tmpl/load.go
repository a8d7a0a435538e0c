package tmpl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// baseFile is the required template definition within a template directory.
const baseFile = "base.tpl"

// tplExt is the file extension of template source files.
const tplExt = ".tpl"

// LoadDir compiles a custom template directory into a set.
//
// The directory must contain a base.tpl definition shared by every level.
// Optional per-level files (debug.tpl, info.tpl, warning.tpl, error.tpl,
// critical.tpl) contain only field declarations; each one replaces the
// attributes of the same-named fields in the base plan for that level.
// Loading is eager: all five level plans compile before the set is
// returned, and any error fails the whole load with no partial set.
func LoadDir(path string) (*Set, error) {
	return loadFS(os.DirFS(path), filepath.Base(filepath.Clean(path)))
}

// loadFS compiles a template directory from any filesystem.
func loadFS(fsys fs.FS, name string) (*Set, error) {
	src, err := fs.ReadFile(fsys, baseFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: template %q has no %s", ErrSyntax, name, baseFile)
		}

		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	base, err := Parse(strings.TrimRight(string(src), "\r\n"))
	if err != nil {
		return nil, fmt.Errorf("template %q: %s: %w", name, baseFile, err)
	}

	plans := make(map[Level]*Plan, 5)

	for level := range Levels() {
		plan := base
		file := strings.ToLower(level.String()) + tplExt

		osrc, err := fs.ReadFile(fsys, file)

		switch {
		case err == nil:
			plan, err = override(base, strings.TrimRight(string(osrc), "\r\n"))
			if err != nil {
				return nil, fmt.Errorf("template %q: %s: %w", name, file, err)
			}

		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("template %q: %w", name, err)
		}

		plans[level] = plan
	}

	return &Set{plans: plans, name: name}, nil
}

// override compiles a per-level file and applies its declarations to a
// copy of the base plan. Override files may contain only field
// declarations separated by whitespace. Each declaration replaces the full
// attribute set of every matching field in the base; declarations naming
// fields the base never renders are ignored.
func override(base *Plan, src string) (*Plan, error) {
	ovr, err := Parse(src)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]*Attrs)

	for _, n := range ovr.nodes {
		switch {
		case n.Kind == KindField:
			attrs[n.Field] = n.Attrs

		case n.Kind == KindText && strings.TrimSpace(n.Text) == "":
			// blank separation between declarations

		default:
			return nil, &SyntaxError{
				Source: src,
				Msg:    "level overrides may contain only field declarations",
			}
		}
	}

	if len(attrs) == 0 {
		return base, nil
	}

	return &Plan{nodes: replaceAttrs(base.nodes, attrs)}, nil
}

// replaceAttrs returns a copy of nodes with the attributes of matching
// field nodes replaced, recursing into conditional groups.
func replaceAttrs(nodes []Node, attrs map[string]*Attrs) []Node {
	out := make([]Node, len(nodes))

	for i, n := range nodes {
		if n.Kind == KindField {
			if a, ok := attrs[n.Field]; ok {
				n.Attrs = a
			}
		}

		if len(n.Nodes) > 0 {
			n.Nodes = replaceAttrs(n.Nodes, attrs)
		}

		out[i] = n
	}

	return out
}

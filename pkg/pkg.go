//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the module's semantic version, embedded from the VERSION
// file at build time. The CLI prints it for --version.
//
//go:embed VERSION
var Version string

const (
	// Name identifies the command and module throughout the project,
	// from help text to default configuration paths.
	Name = "linelog"
	// Description is the one-line summary shown in help output.
	Description = "Template-driven log line formatter"
)

// AuthorInfo names a project author and their contact address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

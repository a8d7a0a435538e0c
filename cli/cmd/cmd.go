package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey keys the [kong.Context] carried in a [context.Context].
type contextKey struct{}

// WithContext stashes the kong context in ctx for retrieval by commands.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdinSource is the source path that selects standard input.
const stdinSource = "-"

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		files    []io.Reader
		hasStdin bool
	}

	// SourceFiles is the combined reader over all configured input sources.
	// Commands that consume records line by line read from it directly.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		io.Reader
		io.WriterTo
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.files) == 0 && !s.hasStdin }

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

// readers returns every configured source in read order.
// Stdin, when included, is always last.
func (s *sourceFiles) readers() []io.Reader {
	if !s.hasStdin {
		return s.files
	}

	return append(s.files[:len(s.files):len(s.files)], os.Stdin)
}

// Read implements io.Reader over the concatenation of all sources.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	return io.MultiReader(s.readers()...).Read(p)
}

// WriteTo implements io.WriterTo by copying every source to w in order.
func (s *sourceFiles) WriteTo(w io.Writer) (n int64, err error) {
	return io.Copy(w, io.MultiReader(s.readers()...))
}

// fileID identifies an open file by device and inode so that symlinks,
// relative paths, and repeated arguments naming the same file collapse
// to a single reader.
type fileID struct {
	dev uint64
	ino uint64
}

// fileIdentity derives a fileID from os.FileInfo.
// It reports false when the platform stat data is not a *syscall.Stat_t.
func fileIdentity(info os.FileInfo) (id fileID, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return id, false
	}

	return fileID{dev: stat.Dev, ino: stat.Ino}, true
}

// WithSourceFiles returns a new context.Context carrying a [SourceFiles]
// that reads the given sources in order.
//
// Each source is opened at most once: paths are made absolute, symlinks
// resolved, and the resulting device/inode pair deduplicated. Every "-"
// collapses to a single stdin reader, which always reads last.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, openSources(sources))
}

// openSources opens and deduplicates the given source paths.
// It returns nil when no source could be opened and stdin was not requested.
func openSources(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.files = make([]io.Reader, 0, len(sources))
	seen := make(map[fileID]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinID, _ := fileIdentity(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinID] = struct{}{}

			continue
		}

		file, ok := openUnique(src, seen)
		if !ok {
			continue
		}

		srcs.files = append(srcs.files, file)
	}

	// Stdin may have been requested as "-" or named as a file
	// (/dev/stdin). Either way its identity is stdinID.
	_, srcs.hasStdin = seen[stdinID]
	delete(seen, stdinID)

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUnique opens the file at path unless its identity is already in seen.
// It reports false for duplicates and for paths that cannot be resolved,
// stat'd, or opened.
func openUnique(path string, seen map[fileID]struct{}) (io.Reader, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	id, ok := fileIdentity(info)
	if !ok {
		return nil, false
	}

	if _, dup := seen[id]; dup {
		return nil, false
	}

	seen[id] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// sourceFilesFrom retrieves the reader stored in ctx by WithSourceFiles.
// Returns nil if no reader was stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

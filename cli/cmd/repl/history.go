package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry is a single submitted line together with the mode it was
// submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages submitted lines with file persistence. Entries are
// tagged with their input mode so navigation can filter by mode.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a History persisted at the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer f.Close()

	h.entries = nil

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		h.entries = append(h.entries, parseEntry(line))
	}

	return sc.Err()
}

// parseEntry splits a persisted line into its mode prefix and content.
// Unprefixed lines load as template entries.
func parseEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, "T:"); ok {
		return HistoryEntry{Line: s, Mode: modeTmpl}
	}

	if s, ok := strings.CutPrefix(line, "C:"); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	return HistoryEntry{Line: line, Mode: modeTmpl}
}

// Write appends a new entry tagged with the given mode. An entry equal to
// the most recent one of the same mode is dropped; an equal entry earlier
// in the history moves to the end.
func (h *History) Write(entry string, mode inputMode) (int, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := HistoryEntry{Line: entry, Mode: mode}

	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == next {
		return len(entry), nil
	}

	dup := slices.Index(h.entries, next)
	if dup >= 0 {
		h.entries = slices.Delete(h.entries, dup, dup+1)
	}

	h.entries = append(h.entries, next)

	// Moving a duplicate to the end rewrites the whole file.
	// A fresh entry only appends.
	if dup >= 0 {
		return h.rewriteFile()
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return f.WriteString(modePrefix(mode) + entry + "\n")
}

// GetEntry retrieves a historic entry by index. Index 0 is the oldest
// entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	var b strings.Builder

	for _, entry := range h.entries {
		b.WriteString(modePrefix(entry.Mode))
		b.WriteString(entry.Line)
		b.WriteString("\n")
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return 0, err
	}

	return b.Len(), nil
}

func modePrefix(mode inputMode) string {
	if mode == modeCtrl {
		return "C:"
	}

	return "T:"
}

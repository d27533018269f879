package repl

import (
	"bufio"
	"os"
	"path/filepath"
)

// defaultMaxHistory bounds in-memory and persisted history.
const defaultMaxHistory = 1000

// History manages REPL command history.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a History persisted at path. An empty path keeps
// history in memory only.
func NewHistory(path string) *History {
	return &History{
		maxSize: defaultMaxHistory,
		file:    path,
	}
}

// Add appends a command, evicting the oldest past the size bound.
func (h *History) Add(cmd string) {
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Get returns the entry at index, 0 being the most recent.
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Load reads history from the file; a missing file is fine.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}
	f, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// Save writes history back to the file.
func (h *History) Save() error {
	if h.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.file), 0700); err != nil {
		return err
	}
	f, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, entry := range h.entries {
		if _, err := f.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Package audit provides an append-only journal of catalog mutations.
//
// Each line of the journal is one JSON entry. Nothing reads the journal back
// when applying mutations; it exists so a dataset's history can be reviewed.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Operations recorded in the journal.
const (
	OpRegister   = "register"
	OpUnregister = "unregister"
	OpAdd        = "add"
	OpMove       = "move"
	OpRemove     = "remove"
)

// Entry represents a single journal entry.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Operation string    `json:"op"`
	Registry  string    `json:"registry,omitempty"` // labels or splits
	Names     []string  `json:"names,omitempty"`
	Source    *string   `json:"source,omitempty"` // nil means "no split"
	Dest      *string   `json:"dest,omitempty"`
	// Percentage is set for moves only.
	Percentage *float64 `json:"percentage,omitempty"`
	Files      []string `json:"files,omitempty"`
	Count      int      `json:"count"`
}

// Logger handles writing to the journal.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// New creates a journal at path. An empty path gives a no-op logger.
func New(path string) *Logger {
	if path == "" {
		return &Logger{enabled: false}
	}
	return &Logger{path: path, enabled: true}
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Path returns the journal location, or "" when disabled.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an entry to the journal.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// LogRegister logs names added to or removed from a registry.
func (l *Logger) LogRegister(registry string, names []string, remove bool) error {
	op := OpRegister
	if remove {
		op = OpUnregister
	}
	return l.Log(Entry{Operation: op, Registry: registry, Names: names, Count: len(names)})
}

// LogAdd logs files assigned to a label or split.
func (l *Logger) LogAdd(registry, name string, files []string) error {
	return l.Log(Entry{
		Operation: OpAdd,
		Registry:  registry,
		Names:     []string{name},
		Files:     files,
		Count:     len(files),
	})
}

// LogMove logs files moved between splits.
func (l *Logger) LogMove(source, dest string, percentage float64, files []string) error {
	return l.Log(Entry{
		Operation:  OpMove,
		Source:     splitPtr(source),
		Dest:       splitPtr(dest),
		Percentage: &percentage,
		Files:      files,
		Count:      len(files),
	})
}

// LogRemove logs files removed from the catalog.
func (l *Logger) LogRemove(files []string, rows int64) error {
	return l.Log(Entry{Operation: OpRemove, Files: files, Count: int(rows)})
}

func splitPtr(split string) *string {
	if split == "" {
		return nil
	}
	return &split
}

// Read reads all entries from the journal. Malformed lines are skipped.
func (l *Logger) Read() ([]Entry, error) {
	if !l.enabled {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// ReadSince reads entries from the journal since the given time.
func (l *Logger) ReadSince(since time.Time) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	var filtered []Entry
	for _, entry := range all {
		if !entry.Timestamp.Before(since) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// ReadForFile reads entries that touched filename.
func (l *Logger) ReadForFile(filename string) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	var filtered []Entry
	for _, entry := range all {
		for _, f := range entry.Files {
			if f == filename {
				filtered = append(filtered, entry)
				break
			}
		}
	}
	return filtered, nil
}

// Package recent remembers the CSV files the roster imported or exported
// most recently, across runs.
package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// File is one remembered CSV file.
type File struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`
	// Op is the last operation on the file: "import" or "export".
	Op string `json:"op,omitempty"`
	// LastUsed is when the file was last imported or exported.
	LastUsed time.Time `json:"last_used"`
}

// List is the recent file list, newest first.
type List struct {
	Files []File `json:"files"`

	path string
}

const (
	// MaxFiles is the maximum number of files remembered.
	MaxFiles = 10
	// FileName is the name of the file the list is stored in.
	FileName = "recent.json"
)

// UserDir returns the per-user roster directory (~/.roster).
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roster"), nil
}

// DefaultPath returns where the list is stored for the current user.
func DefaultPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the list stored at path. A missing or unreadable file gives an
// empty list. Files that no longer exist are dropped.
func Load(path string) (*List, error) {
	l := &List{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, l); err != nil {
		// Corrupt file: start over.
		return &List{path: path}, nil
	}

	l.Files = slices.DeleteFunc(l.Files, func(f File) bool {
		_, err := os.Stat(f.Path)
		return err != nil
	})
	return l, nil
}

// Save writes the list back to the path it was loaded from.
func (l *List) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// Add moves path to the front of the list, recording op.
func (l *List) Add(path, op string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	l.Files = slices.DeleteFunc(l.Files, func(f File) bool {
		return f.Path == path
	})
	l.Files = slices.Insert(l.Files, 0, File{Path: path, Op: op, LastUsed: time.Now()})
	if len(l.Files) > MaxFiles {
		l.Files = l.Files[:MaxFiles]
	}
}

// Latest returns the most recently used path.
func (l *List) Latest() (string, bool) {
	if len(l.Files) == 0 {
		return "", false
	}
	return l.Files[0].Path, true
}

// Paths returns the remembered paths, newest first.
func (l *List) Paths() []string {
	paths := make([]string, len(l.Files))
	for i, f := range l.Files {
		paths[i] = f.Path
	}
	return paths
}

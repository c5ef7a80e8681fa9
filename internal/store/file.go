package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File stores named slots as a JSON object, e.g. {"snakeHighScore": 12}.
// Other slots in the same file are preserved on save.
type File struct {
	mu   sync.Mutex
	path string
	slot string
}

// NewFile returns a store backed by the JSON file at path.
func NewFile(path, slot string) *File {
	return &File{path: path, slot: slot}
}

// Load returns the slot value. A missing file or slot reads as 0; an
// unparseable file reads as 0 together with an error describing it.
func (f *File) Load(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return 0, err
	}
	if score := slots[f.slot]; score > 0 {
		return score, nil
	}
	return 0, nil
}

// Save writes score if it beats the stored value. The file is replaced
// atomically via a temporary file in the same directory.
func (f *File) Save(ctx context.Context, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, err := f.read()
	if err != nil {
		// Corrupt contents are overwritten rather than blocking new records
		slots = map[string]int{}
	}
	if slots[f.slot] >= score {
		return nil
	}
	slots[f.slot] = score

	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) read() (map[string]int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high score file: %w", err)
	}
	slots := map[string]int{}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("parse high score file %s: %w", f.path, err)
	}
	return slots, nil
}

package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persists streams as .txt files and snapshots as .json files inside a
// single directory. Writes to the same key are serialized; the original
// system kept everything under one application folder and this does the
// same.
type File struct {
	dir string
	mu  sync.Mutex
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) streamPath(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".txt")
}

func (f *File) snapshotPath(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// sanitizeKey keeps keys from escaping the store directory.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return replacer.Replace(key)
}

func (f *File) Exists(_ context.Context, key string) (bool, error) {
	for _, path := range []string{f.streamPath(key), f.snapshotPath(key)} {
		if _, err := os.Stat(path); err == nil {
			return true, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}
	return false, nil
}

func (f *File) ReadLines(_ context.Context, key string) ([]string, error) {
	file, err := os.Open(f.streamPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func (f *File) AppendLine(_ context.Context, key, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.streamPath(key), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(text + "\n")
	return err
}

func (f *File) Overwrite(_ context.Context, key, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.streamPath(key), []byte(text+"\n"), 0o644)
}

func (f *File) SaveSnapshot(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.snapshotPath(key), data, 0o644)
}

func (f *File) LoadSnapshot(_ context.Context, key string, v any) error {
	data, err := os.ReadFile(f.snapshotPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON document per collection under a data directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing a collection.
func (f *FileStore) Path(collection Collection) string {
	return filepath.Join(f.dir, string(collection)+".json")
}

// Write replaces the collection file. The document is written to a temp
// file first and renamed into place.
func (f *FileStore) Write(ctx context.Context, collection Collection, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, string(collection)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", collection, err)
	}
	return nil
}

// Read returns the records of a collection. A missing or empty file yields
// no records.
func (f *FileStore) Read(ctx context.Context, collection Collection) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	data, err := os.ReadFile(f.Path(collection))
	f.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return records, nil
}

func (f *FileStore) Close() error { return nil }

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

// FileStore keeps every collection in a single JSON document on disk.
// Writes go to a temporary file that is renamed over the original, so a
// reader never sees a half-applied SetMany.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *FileStore) Get(_ context.Context, collection string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.readAll()
	if err != nil {
		return nil, err
	}
	blob, ok := doc[collection]
	if !ok {
		return nil, nil
	}
	return []byte(blob), nil
}

func (f *FileStore) Set(ctx context.Context, collection string, blob []byte) error {
	return f.SetMany(ctx, map[string][]byte{collection: blob})
}

func (f *FileStore) SetMany(_ context.Context, blobs map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.readAll()
	if err != nil {
		return err
	}
	for name, blob := range blobs {
		if !json.Valid(blob) {
			return fmt.Errorf("collection %s is not valid JSON", name)
		}
		doc[name] = json.RawMessage(blob)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".rideshare-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (f *FileStore) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.readAll()
	return err
}

func (f *FileStore) Close(context.Context) error { return nil }

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV keeps all entries in one indented JSON object on disk.
// Every Set rewrites the file; the file is re-read on every Get so writes
// from other processes are observed (last writer wins).
type FileKV struct {
	mu       sync.Mutex
	filePath string
	closed   bool
}

// NewFileKV returns a store backed by the JSON file at path.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &Error{Op: "open", Err: fmt.Errorf("failed to create directory: %w", err)}
	}
	return &FileKV{filePath: path}, nil
}

// Path returns the backing file path.
func (f *FileKV) Path() string { return f.filePath }

func (f *FileKV) readLocked() (map[string]string, error) {
	entries := make(map[string]string)
	data, err := os.ReadFile(f.filePath)
	if os.IsNotExist(err) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.filePath, err)
	}
	return entries, nil
}

// Get reads key.
func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, &Error{Op: "get", Key: key, Err: ErrClosed}
	}

	entries, err := f.readLocked()
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Err: err}
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set writes key and rewrites the file.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return &Error{Op: "set", Key: key, Err: ErrClosed}
	}

	entries, err := f.readLocked()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write.
		entries = make(map[string]string)
	}
	entries[key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	tmp := f.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	if err := os.Rename(tmp, f.filePath); err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Close marks the store closed.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

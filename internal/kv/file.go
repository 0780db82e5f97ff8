package kv

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend держит все документы в одном JSON-файле и переписывает его
// целиком при каждой записи через временный файл и rename.
type FileBackend struct {
	mu     sync.RWMutex
	path   string
	docs   map[string]json.RawMessage
	closed bool
}

func OpenFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	b := &FileBackend{path: path, docs: map[string]json.RawMessage{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &b.docs); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, false, ErrBackendClosed
	}
	doc, ok := b.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (b *FileBackend) Put(key string, doc []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBackendClosed
	}
	stored := make(json.RawMessage, len(doc))
	copy(stored, doc)
	b.docs[key] = stored
	return b.flushLocked()
}

func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBackendClosed
	}
	if _, ok := b.docs[key]; !ok {
		return nil
	}
	delete(b.docs, key)
	return b.flushLocked()
}

func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *FileBackend) flushLocked() error {
	data, err := json.MarshalIndent(b.docs, "", "  ")
	if err != nil {
		return err
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Dir resolves the base storage directory.
// Precedence:
//  1. EXTKIT_STORAGE_DIR, if set and non-empty
//  2. os.UserCacheDir()/extkit
//
// Returns ("", false) if a base cannot be resolved.
func Dir() (string, bool) {
	if d, ok := os.LookupEnv("EXTKIT_STORAGE_DIR"); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "extkit"), true
	}
	return "", false
}

// FileBackend keeps each area in one JSON document on disk. It is the
// stand-in for the browser's storage service when the helpers run outside
// an extension, and doubles as the CLI's persistence.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend returns a FileBackend rooted at dir. An empty dir resolves
// through Dir().
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		base, ok := Dir()
		if !ok {
			return nil, errors.New("no usable storage directory")
		}
		dir = base
	}
	return &FileBackend{dir: dir}, nil
}

// Path returns the file holding the given area.
func (fb *FileBackend) Path(area Area) string {
	return filepath.Join(fb.dir, area.String()+".json")
}

func (fb *FileBackend) Read(area Area, key string) (any, bool, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	doc, err := fb.load(area)
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (fb *FileBackend) Write(area Area, entries map[string]any) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	doc, err := fb.load(area)
	if err != nil {
		return err
	}
	for k, v := range entries {
		doc[k] = v
	}
	return fb.save(area, doc)
}

// Keys returns the keys currently stored in area.
func (fb *FileBackend) Keys(area Area) ([]string, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	doc, err := fb.load(area)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	return keys, nil
}

func (fb *FileBackend) Clear(area Area) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if err := os.Remove(fb.Path(area)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear storage area %s: %w", area, err)
	}
	return nil
}

// load reads the area document. A missing file is an empty area.
func (fb *FileBackend) load(area Area) (map[string]any, error) {
	b, err := os.ReadFile(fb.Path(area))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage area %s: %w", area, err)
	}

	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage area %s: %w", area, err)
	}
	return doc, nil
}

func (fb *FileBackend) save(area Area, doc map[string]any) error {
	if err := os.MkdirAll(fb.dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal storage area %s: %w", area, err)
	}
	if err := os.WriteFile(fb.Path(area), b, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write storage area %s: %w", area, err)
	}
	return nil
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package storage

import "sync"

// MemBackend is an in-memory Backend for tests and ephemeral use.
type MemBackend struct {
	mu    sync.Mutex
	areas map[Area]map[string]any
}

func NewMemBackend() *MemBackend {
	return &MemBackend{areas: map[Area]map[string]any{}}
}

func (mb *MemBackend) Read(area Area, key string) (any, bool, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	v, ok := mb.areas[area][key]
	return v, ok, nil
}

func (mb *MemBackend) Write(area Area, entries map[string]any) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	doc, ok := mb.areas[area]
	if !ok {
		doc = map[string]any{}
		mb.areas[area] = doc
	}
	for k, v := range entries {
		doc[k] = v
	}
	return nil
}

func (mb *MemBackend) Clear(area Area) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	delete(mb.areas, area)
	return nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"fmt"
	"strconv"

	"github.com/apex/log"
)

// Area selects one of the two key-value namespaces the host environment
// provides.
type Area int

const (
	// Local is the device-local storage area.
	Local Area = iota
	// Sync is the storage area replicated across the user's devices.
	Sync
)

func (a Area) String() string {
	if a == Sync {
		return "sync"
	}
	return "local"
}

// ParseArea normalizes an area selector. The names "local" and "sync" are
// canonical. Numeric selectors (0 = local, anything else = sync) are a
// deprecated compatibility input; they still parse, with a debug note.
func ParseArea(s string) (Area, error) {
	switch s {
	case "local":
		return Local, nil
	case "sync":
		return Sync, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		log.Debugf("numeric storage area %q is deprecated, use local/sync", s)
		return LegacyArea(n), nil
	}
	return Local, fmt.Errorf("unknown storage area %q", s)
}

// LegacyArea maps the historical numeric flag onto an Area. Zero has always
// meant local; every other value means sync.
func LegacyArea(n int) Area {
	if n == 0 {
		return Local
	}
	return Sync
}

// Backend is the host storage service. Implementations report failures as
// errors; the sentinel conversion happens in Store, not here.
type Backend interface {
	// Read returns the value for key in area and whether it was present.
	Read(area Area, key string) (any, bool, error)
	// Write persists every entry of the mapping into area.
	Write(area Area, entries map[string]any) error
	// Clear wipes all entries in area.
	Clear(area Area) error
}

// Store wraps a Backend with the helper contract: reads fall back to a
// caller-supplied default and writes report plain success/failure. No
// failure ever propagates as an error or panic.
type Store struct {
	be Backend
}

// NewStore returns a Store over the given backend.
func NewStore(be Backend) *Store {
	return &Store{be: be}
}

// Read returns the value stored under key in area, or def when the key is
// absent or the backend fails.
func (s *Store) Read(area Area, key string, def any) any {
	v, ok, err := s.be.Read(area, key)
	if err != nil {
		log.WithError(err).Warnf("storage read failed: %s/%s", area, key)
		return def
	}
	if !ok {
		return def
	}
	return v
}

// Write persists all entries into area. Returns true on success.
func (s *Store) Write(area Area, entries map[string]any) bool {
	if err := s.be.Write(area, entries); err != nil {
		log.WithError(err).Warnf("storage write failed: %s", area)
		return false
	}
	return true
}

// Clear wipes the area. Returns true on success.
func (s *Store) Clear(area Area) bool {
	if err := s.be.Clear(area); err != nil {
		log.WithError(err).Warnf("storage clear failed: %s", area)
		return false
	}
	return true
}

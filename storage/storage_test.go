// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArea(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Area
		wantErr bool
	}{
		{name: "local", in: "local", want: Local},
		{name: "sync", in: "sync", want: Sync},
		{name: "legacy zero", in: "0", want: Local},
		{name: "legacy one", in: "1", want: Sync},
		{name: "legacy other", in: "7", want: Sync},
		{name: "garbage", in: "session", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArea(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(NewMemBackend())

	ok := s.Write(Local, map[string]any{"theme": "dark", "count": 3})
	require.True(t, ok)

	assert.Equal(t, "dark", s.Read(Local, "theme", nil))
	assert.Equal(t, 3, s.Read(Local, "count", 0))
}

func TestStoreReadDefault(t *testing.T) {
	s := NewStore(NewMemBackend())

	assert.Equal(t, "fallback", s.Read(Local, "missing", "fallback"))
	assert.Nil(t, s.Read(Sync, "missing", nil))
}

func TestStoreAreasIsolated(t *testing.T) {
	s := NewStore(NewMemBackend())

	s.Write(Local, map[string]any{"k": "local-value"})
	s.Write(Sync, map[string]any{"k": "sync-value"})

	assert.Equal(t, "local-value", s.Read(Local, "k", nil))
	assert.Equal(t, "sync-value", s.Read(Sync, "k", nil))

	require.True(t, s.Clear(Local))
	assert.Nil(t, s.Read(Local, "k", nil))
	assert.Equal(t, "sync-value", s.Read(Sync, "k", nil))
}

// failingBackend errors on every operation.
type failingBackend struct{}

func (failingBackend) Read(Area, string) (any, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingBackend) Write(Area, map[string]any) error { return errors.New("backend down") }
func (failingBackend) Clear(Area) error                 { return errors.New("backend down") }

func TestStoreSwallowsBackendFailures(t *testing.T) {
	s := NewStore(failingBackend{})

	assert.Equal(t, "dflt", s.Read(Local, "k", "dflt"))
	assert.False(t, s.Write(Local, map[string]any{"k": 1}))
	assert.False(t, s.Clear(Sync))
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	require.NoError(t, err)

	s := NewStore(fb)
	require.True(t, s.Write(Local, map[string]any{"token": "abc", "n": 2}))

	// Re-open to prove the write hit disk.
	fb2, err := NewFileBackend(dir)
	require.NoError(t, err)
	s2 := NewStore(fb2)

	assert.Equal(t, "abc", s2.Read(Local, "token", nil))
	// JSON numbers come back as float64.
	assert.Equal(t, float64(2), s2.Read(Local, "n", nil))

	require.True(t, s2.Clear(Local))
	assert.Nil(t, s2.Read(Local, "token", nil))
	// Clearing an already-empty area is fine.
	assert.True(t, s2.Clear(Local))
}

func TestFileBackendEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXTKIT_STORAGE_DIR", dir)

	fb, err := NewFileBackend("")
	require.NoError(t, err)
	assert.Equal(t, dir, fb.dir)
}

func TestFileBackendMergesWrites(t *testing.T) {
	fb, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	s := NewStore(fb)

	s.Write(Sync, map[string]any{"a": "1"})
	s.Write(Sync, map[string]any{"b": "2"})

	assert.Equal(t, "1", s.Read(Sync, "a", nil))
	assert.Equal(t, "2", s.Read(Sync, "b", nil))
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestDoJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"widget","price":9.99}`))
	}))
	defer srv.Close()

	c := New()
	got := c.Do(ctx, "GET", srv.URL, "", false, nil, Options{})
	require.NotNil(t, got)

	m, ok := got.(map[string]interface{})
	require.True(t, ok, "JSON object should decode to a map")
	assert.Equal(t, "widget", m["name"])
	assert.Equal(t, 9.99, m["price"])
	assert.NoError(t, c.LastError())
}

func TestDoTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	got := New().Do(ctx, "GET", srv.URL, "", false, nil, Options{})
	assert.Equal(t, "hello", got)
}

func TestDoHeaders(t *testing.T) {
	var auth, contentType, extra string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		extra = r.Header.Get("X-Extra")
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`true`))
	}))
	defer srv.Close()

	got := New().Do(ctx, "POST", srv.URL, "sekrit", true,
		map[string]any{"a": 1},
		Options{Headers: map[string]string{"X-Extra": "yes"}})

	assert.Equal(t, true, got)
	assert.Equal(t, "Bearer sekrit", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "yes", extra)
	assert.JSONEq(t, `{"a":1}`, string(body))
}

func TestDoCallerHeadersWin(t *testing.T) {
	var contentType, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	New().Do(ctx, "POST", srv.URL, "sekrit", true,
		map[string]any{"a": 1},
		Options{Headers: map[string]string{
			"Content-Type":  "application/vnd.custom",
			"Authorization": "Basic abc",
		}})

	// Caller-supplied headers override both defaults.
	assert.Equal(t, "application/vnd.custom", contentType)
	assert.Equal(t, "Basic abc", auth)
}

func TestDoStamp(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New()
	c.Do(ctx, "GET", srv.URL+"?q=1", "", false, nil, Options{})
	assert.Contains(t, query, "q=1")
	assert.Contains(t, query, "t=")

	c.Do(ctx, "GET", srv.URL+"?q=1", "", true, nil, Options{})
	assert.Equal(t, "q=1", query)
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("too late"))
	}))
	defer srv.Close()

	c := New()
	got := c.Do(ctx, "GET", srv.URL, "", true, nil, Options{Timeout: 20 * time.Millisecond})
	assert.Nil(t, got)
	assert.Error(t, c.LastError())
}

func TestDoForbiddenTriggersReload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	var reloaded bool
	c := New()
	c.Reload = func() { reloaded = true }

	got := c.Do(ctx, "GET", srv.URL, "", true, nil, Options{})
	assert.Nil(t, got)
	assert.True(t, reloaded)
}

func TestDoForbiddenRecordsLastError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New()

	// Seed an earlier transport failure, then hit the 403. LastError must
	// describe the 403, not the leftover transport error.
	c.Do(ctx, "GET", "http://127.0.0.1:1", "", true, nil, Options{})
	require.Error(t, c.LastError())

	got := c.Do(ctx, "GET", srv.URL, "", true, nil, Options{})
	assert.Nil(t, got)
	require.Error(t, c.LastError())
	assert.Contains(t, c.LastError().Error(), "403")
	assert.NotContains(t, c.LastError().Error(), "connection refused")
}

func TestDoErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New()
	got := c.Do(ctx, "GET", srv.URL, "", true, nil, Options{})
	assert.Nil(t, got)
	assert.Error(t, c.LastError())
}

func TestDoTransportError(t *testing.T) {
	c := New()
	got := c.Do(ctx, "GET", "http://127.0.0.1:1", "", true, nil,
		Options{Timeout: 200 * time.Millisecond})
	assert.Nil(t, got)
	assert.Error(t, c.LastError())
}

func TestDoCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{"n": n})
	}))
	defer srv.Close()

	now := time.Now()
	c := NewWithClock(func() time.Time { return now })

	opts := Options{Cache: time.Minute}
	first := c.Do(ctx, "GET", srv.URL, "", true, nil, opts)
	second := c.Do(ctx, "GET", srv.URL, "", true, nil, opts)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, hits.Load(), "second call should be served from cache")

	// Advance past the cache window and a new request goes out.
	now = now.Add(2 * time.Minute)
	third := c.Do(ctx, "GET", srv.URL, "", true, nil, opts)
	assert.NotEqual(t, first, third)
	assert.EqualValues(t, 2, hits.Load())
}

func TestDoCacheOnlyGET(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New()
	opts := Options{Cache: time.Minute}
	c.Do(ctx, "POST", srv.URL, "", true, nil, opts)
	c.Do(ctx, "POST", srv.URL, "", true, nil, opts)
	assert.EqualValues(t, 2, hits.Load(), "POST responses are never cached")
}

func TestDoCacheKeyedByURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	c := New()
	opts := Options{Cache: time.Minute}
	a := c.Do(ctx, "GET", srv.URL+"/a", "", true, nil, opts)
	b := c.Do(ctx, "GET", srv.URL+"/b", "", true, nil, opts)
	assert.Equal(t, "/a", a)
	assert.Equal(t, "/b", b)
}

func TestDoInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"broken`))
	}))
	defer srv.Close()

	c := New()
	got := c.Do(ctx, "GET", srv.URL, "", true, nil, Options{})
	assert.Nil(t, got)
	assert.Error(t, c.LastError())
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// DefaultTimeout is applied when Options.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Options tune a single request.
type Options struct {
	// Timeout aborts the in-flight request after this duration.
	Timeout time.Duration
	// Headers are merged in last, overriding the content-type and
	// authorization defaults.
	Headers map[string]string
	// Cache enables response caching for GET requests. A fresh entry
	// (younger than this duration) is returned without a network call.
	Cache time.Duration
}

// Client issues HTTP requests with the swallow-everything contract the
// extension helpers have always had: any transport or HTTP-level failure
// resolves to a nil result, never an error. The last failure is retained
// for callers that want to tell "no data" from "request failed".
type Client struct {
	// HTTPClient is the underlying transport. Defaults to a plain
	// http.Client; the per-request timeout comes from Options, not here.
	HTTPClient *http.Client

	// Reload is invoked when the server answers 403. In the extension this
	// reloads the page so the auth flow can run again; hosts embedding the
	// helper inject whatever recovery applies. Nil means no-op.
	Reload func()

	cache *respCache

	mu      sync.Mutex
	lastErr error
}

// New returns a Client with a real clock.
func New() *Client {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Client whose response cache reads time from now.
func NewWithClock(now func() time.Time) *Client {
	return &Client{
		HTTPClient: &http.Client{},
		cache:      newRespCache(now),
	}
}

var std = New()

// Do issues a request on a shared package-level client.
func Do(ctx context.Context, method, target, token string, noStamp bool, body any, opts Options) any {
	return std.Do(ctx, method, target, token, noStamp, body, opts)
}

// LastError reports the last failure seen by the shared client.
func LastError() error {
	return std.LastError()
}

// Do issues one HTTP request and returns the decoded response payload: a
// JSON value when the response content-type says JSON, the raw text body
// otherwise, or nil on any failure. A bearer token is attached when token
// is non-empty. Unless noStamp is set, a t=<now> query parameter is
// appended to defeat intermediate caches. A non-nil body is serialized as
// JSON.
func (c *Client) Do(ctx context.Context, method, target, token string, noStamp bool, body any, opts Options) any {
	method = strings.ToUpper(method)

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.fail(fmt.Errorf("failed to marshal body: %w", err))
			return nil
		}
		payload = b
	}

	// Only GETs are cached. The key covers the body too, so callers that
	// (unusually) send a GET body don't share entries.
	cacheable := opts.Cache > 0 && method == http.MethodGet
	key := ""
	if cacheable {
		if c.cache == nil {
			// Zero-value Client, not built through New.
			c.cache = newRespCache(time.Now)
		}
		key = cacheKey(method, target, payload)
		if v, ok := c.cache.get(key, opts.Cache); ok {
			log.Debugf("cache hit: %s %s", method, target)
			c.ok()
			return v
		}
	}

	reqURL := target
	if !noStamp {
		stamped, err := stamp(target, time.Now())
		if err != nil {
			c.fail(fmt.Errorf("failed to parse url %s: %w", target, err))
			return nil
		}
		reqURL = stamped
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		c.fail(fmt.Errorf("failed to create request: %w", err))
		return nil
	}

	// Header precedence, lowest to highest: content-type default, bearer
	// token, caller-supplied headers.
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		// Timeouts, aborts and transport errors all land here.
		c.fail(fmt.Errorf("failed to execute request: %w", err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		// Recorded like any other failure so LastError does not report an
		// older, unrelated one.
		c.fail(fmt.Errorf("forbidden (403) for %s %s, triggering reload", method, target))
		if c.Reload != nil {
			c.Reload()
		}
		return nil
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		c.fail(fmt.Errorf("failed to read response: %w", err))
		return nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.fail(fmt.Errorf("unexpected status %d for %s %s", resp.StatusCode, method, target))
		return nil
	}

	var result any
	if isJSON(resp.Header.Get("Content-Type")) {
		if !gjson.ValidBytes(doc) {
			c.fail(fmt.Errorf("invalid JSON in response for %s %s", method, target))
			return nil
		}
		result = gjson.ParseBytes(doc).Value()
	} else {
		result = string(doc)
	}

	if cacheable {
		c.cache.put(key, result)
	}

	c.ok()
	return result
}

// LastError returns the failure behind the most recent nil result, or nil
// if the last call succeeded.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) fail(err error) {
	log.WithError(err).Warn("fetch failed")
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *Client) ok() {
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
}

// stamp appends a t=<unix ms> query parameter to target.
func stamp(target string, now time.Time) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

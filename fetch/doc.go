// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetch is the extension's network helper: one call that issues an
// HTTP request with a timeout guard, optional bearer auth, optional
// cache-busting, and an optional short-lived response cache. Failures never
// escape to the caller; the result is simply nil.
package fetch

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package storage is a thin accessor over the host's two-area key-value
// store. Values are opaque to the helpers; there is no schema and no
// atomicity beyond what the backend provides natively.
package storage

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders command results as text, JSON, YAML, or a simple
// table.
package output

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the build version, stamped at link time via
// -ldflags "-X github.com/staranto/extkit/internal/version.Version=...".
package version

var Version = "dev"

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// extkit is shared helper code for the browser extension and its tooling:
// the fetch, storage, and currency packages are the library surface, and
// the extkit binary exercises them from the command line.
package main

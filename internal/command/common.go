// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/extkit/internal/meta"
	"github.com/staranto/extkit/storage"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr extkit <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "extkit", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ResolveToken turns the --token flag value into a usable token. "-" prompts
// on the terminal without echoing.
func ResolveToken(value string) (string, error) {
	if value != "-" {
		return value, nil
	}

	fmt.Fprint(os.Stderr, "Token: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ResolveArea parses the AREA positional argument.
func ResolveArea(cmd *cli.Command) (storage.Area, error) {
	spec := cmd.Args().First()
	if spec == "" {
		return storage.Local, fmt.Errorf("missing AREA argument (local or sync)")
	}
	return storage.ParseArea(spec)
}

// OpenStore builds a Store over the file backend rooted at --dir.
func OpenStore(cmd *cli.Command) (*storage.Store, error) {
	be, err := storage.NewFileBackend(cmd.String("dir"))
	if err != nil {
		return nil, err
	}
	return storage.NewStore(be), nil
}

// ParsePairs turns K=V arguments into a storage mapping. Values that parse
// as JSON are stored decoded; everything else is stored as a string.
func ParsePairs(args []string) (map[string]any, error) {
	entries := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed entry %q, want KEY=VALUE", arg)
		}

		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			entries[k] = decoded
		} else {
			entries[k] = v
		}
	}
	return entries, nil
}

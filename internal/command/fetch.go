// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/extkit/fetch"
	"github.com/staranto/extkit/internal/config"
	"github.com/staranto/extkit/internal/meta"
	"github.com/staranto/extkit/internal/output"
)

// FetchCommandAction is the action handler for the "fetch" subcommand. It
// drives the network helper against a URL and emits the decoded result.
func FetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "fetch") {
		return nil
	}

	target := cmd.Args().First()
	if target == "" {
		return fmt.Errorf("missing URL argument")
	}

	token, err := ResolveToken(cmd.String("token"))
	if err != nil {
		return err
	}

	// Config-sourced defaults first, then the --header flags on top.
	defaults, _ := config.GetStringSlice("fetch.headers", nil)
	headers := map[string]string{}
	for _, h := range append(defaults, cmd.StringSlice("header")...) {
		k, v, ok := strings.Cut(h, "=")
		if !ok {
			return fmt.Errorf("malformed header %q, want NAME=VALUE", h)
		}
		headers[k] = v
	}

	var body any
	if raw := cmd.String("body"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			return fmt.Errorf("failed to parse body as JSON: %w", err)
		}
	}

	opts := fetch.Options{
		Timeout: time.Duration(cmd.Int("timeout")) * time.Millisecond,
		Cache:   time.Duration(cmd.Int("cache")) * time.Millisecond,
		Headers: headers,
	}

	client := fetch.New()
	result := client.Do(ctx, cmd.String("method"), target, token, cmd.Bool("no-stamp"), body, opts)

	// The helper swallows failures; the CLI surfaces them instead, since a
	// human is watching.
	if result == nil {
		if err := client.LastError(); err != nil {
			return err
		}
	}

	if path := cmd.String("path"); path != "" && result != nil {
		doc, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to re-marshal result: %w", err)
		}
		result = gjson.GetBytes(doc, path).Value()
	}

	output.Spit(result, cmd.String("output"), os.Stdout)
	return nil
}

func FetchCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "issue an HTTP request the way the extension would",
		UsageText: `extkit fetch [options] URL`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "method",
				Aliases: []string{"X"},
				Usage:   "HTTP method",
				Value:   "GET",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "abort the request after this many milliseconds",
				Value: 15000, //nolint:mnd
				Sources: cli.NewValueSourceChain(
					yaml.YAML("fetch.timeout", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.IntFlag{
				Name:  "cache",
				Usage: "cache GET responses for this many milliseconds",
				Value: 0,
				Sources: cli.NewValueSourceChain(
					yaml.YAML("fetch.cache", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
			&cli.StringSliceFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "extra header as NAME=VALUE, may repeat",
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"d"},
				Usage:   "JSON request body",
			},
			&cli.BoolFlag{
				Name:  "no-stamp",
				Usage: "suppress the cache-busting t= query parameter",
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "extract a gjson path from the result",
			},
			NewTokenFlag(),
			NewOutputFlag("fetch", meta.Config.Source),
			tldrFlag,
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return FetchCommandAction(ctx, c)
		},
	}
}

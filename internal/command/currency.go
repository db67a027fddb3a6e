// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/extkit/currency"
	"github.com/staranto/extkit/internal/meta"
)

// CurrencyCommandAction formats a monetary amount for display.
func CurrencyCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "currency") {
		return nil
	}

	raw := cmd.Args().First()
	if raw == "" {
		return fmt.Errorf("missing VALUE argument")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("failed to parse value %q: %w", raw, err)
	}

	code := cmd.Args().Get(1)
	if code == "" {
		return fmt.Errorf("missing CODE argument")
	}

	fmt.Println(currency.Format(value, code, cmd.String("locale")))
	return nil
}

func CurrencyCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "currency",
		Usage:     "format a monetary amount",
		UsageText: `extkit currency VALUE CODE [--locale LOCALE]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewLocaleFlag(meta.Config.Source),
			tldrFlag,
		},
		Action: CurrencyCommandAction,
	}
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/extkit/internal/meta"
	"github.com/staranto/extkit/internal/output"
)

// GetCommandAction reads one key from a storage area, falling back to an
// optional default.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "get") {
		return nil
	}

	area, err := ResolveArea(cmd)
	if err != nil {
		return err
	}

	key := cmd.Args().Get(1)
	if key == "" {
		return fmt.Errorf("missing KEY argument")
	}

	var def any
	if cmd.Args().Len() > 2 { //nolint:mnd
		def = cmd.Args().Get(2) //nolint:mnd
	}

	store, err := OpenStore(cmd)
	if err != nil {
		return err
	}

	output.Spit(store.Read(area, key, def), cmd.String("output"), os.Stdout)
	return nil
}

// SetCommandAction writes one or more KEY=VALUE entries into a storage area.
func SetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "set") {
		return nil
	}

	area, err := ResolveArea(cmd)
	if err != nil {
		return err
	}

	args := cmd.Args().Slice()
	if len(args) < 2 { //nolint:mnd
		return fmt.Errorf("missing KEY=VALUE arguments")
	}

	entries, err := ParsePairs(args[1:])
	if err != nil {
		return err
	}

	store, err := OpenStore(cmd)
	if err != nil {
		return err
	}

	if !store.Write(area, entries) {
		return fmt.Errorf("failed to write %d entries to %s", len(entries), area)
	}
	return nil
}

// ClearCommandAction wipes a storage area.
func ClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "clear") {
		return nil
	}

	area, err := ResolveArea(cmd)
	if err != nil {
		return err
	}

	store, err := OpenStore(cmd)
	if err != nil {
		return err
	}

	if !store.Clear(area) {
		return fmt.Errorf("failed to clear %s", area)
	}
	return nil
}

func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a value from a storage area",
		UsageText: `extkit get AREA KEY [DEFAULT]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDirFlag(meta.Config.Source),
			NewOutputFlag("get", meta.Config.Source),
			tldrFlag,
		},
		Action: GetCommandAction,
	}
}

func SetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "write values into a storage area",
		UsageText: `extkit set AREA KEY=VALUE [KEY=VALUE ...]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDirFlag(meta.Config.Source),
			tldrFlag,
		},
		Action: SetCommandAction,
	}
}

func ClearCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "wipe a storage area",
		UsageText: `extkit clear AREA`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDirFlag(meta.Config.Source),
			tldrFlag,
		},
		Action: ClearCommandAction,
	}
}

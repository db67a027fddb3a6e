// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/extkit/internal/meta"
	"github.com/staranto/extkit/internal/output"
	"github.com/staranto/extkit/storage"
)

// StatCommandAction summarizes both storage areas: entry count, on-disk
// size, and last modification time.
func StatCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "stat") {
		return nil
	}

	be, err := storage.NewFileBackend(cmd.String("dir"))
	if err != nil {
		return err
	}

	var rows [][]string
	for _, area := range []storage.Area{storage.Local, storage.Sync} {
		entries, size, modified := "0", "-", "-"

		if keys, err := be.Keys(area); err == nil {
			entries = strconv.Itoa(len(keys))
		} else {
			log.WithError(err).Warnf("failed to read storage area %s", area)
		}

		if info, err := os.Stat(be.Path(area)); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
			modified = humanize.Time(info.ModTime())
		}

		rows = append(rows, []string{area.String(), entries, size, modified})
	}

	output.TableWriter([]string{"Area", "Entries", "Size", "Modified"}, rows)
	return nil
}

func StatCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "summarize the storage areas",
		UsageText: `extkit stat`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDirFlag(meta.Config.Source),
			tldrFlag,
		},
		Action: StatCommandAction,
	}
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	HideDefault: true,
}

// NewOutputFlag builds the -o/--output flag, sourced from the namespaced and
// then the top-level "output" key in extkit.yaml.
func NewOutputFlag(ns, source string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"output", altsrc.StringSourcer(source)),
			yaml.YAML("output", altsrc.StringSourcer(source)),
		),
		Value: "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
}

// NewDirFlag builds the --dir flag pointing at the storage directory,
// sourced from storage.dir in extkit.yaml.
func NewDirFlag(source string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "storage directory (default: platform cache dir)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("EXTKIT_STORAGE_DIR"),
			yaml.YAML("storage.dir", altsrc.StringSourcer(source)),
		),
		Value: "",
	}
}

// NewTokenFlag builds the -t/--token flag. A value of "-" prompts on the
// terminal without echo.
func NewTokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "token",
		Aliases: []string{"t"},
		Usage:   "bearer token ('-' to prompt)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("EXTKIT_TOKEN"),
		),
		Value: "",
	}
}

// NewLocaleFlag builds the --locale flag, sourced from currency.locale.
func NewLocaleFlag(source string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "locale",
		Aliases: []string{"l"},
		Usage:   "BCP 47 locale for number formatting",
		Sources: cli.NewValueSourceChain(
			yaml.YAML("currency.locale", altsrc.StringSourcer(source)),
		),
		Value: "",
	}
}

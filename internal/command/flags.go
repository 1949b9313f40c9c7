// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/rdspggo/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	actionFlag *cli.StringFlag = &cli.StringFlag{
		Name:     "action",
		Aliases:  []string{"a"},
		Usage:    "action to take: compare, copy, diff, or merge",
		Validator: func(value string) error {
			return FlagValidators(value, ActionValidator)
		},
	}

	sourceGroupFlag *cli.StringFlag = &cli.StringFlag{
		Name:     "parameter-group",
		Aliases:  []string{"p"},
		Usage:    "source parameter group",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	destGroupFlag *cli.StringFlag = &cli.StringFlag{
		Name:     "dest-parameter-group",
		Aliases:  []string{"d"},
		Usage:    "destination parameter group",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}

	destRegionFlag *cli.StringFlag = &cli.StringFlag{
		Name:    "dest-region",
		Aliases: []string{"w"},
		Usage:   "destination region. Defaults to the source region",
	}

	dryRunFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "dry-run",
		Usage:       "print the change set without applying it",
		HideDefault: true,
	}

	yesFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "skip the confirmation prompt for copy and merge",
		HideDefault: true,
	}
)

// NewSourceRegionFlag constructs the "source-region" flag. The value chain
// is flag, then AWS_DEFAULT_REGION, then the config file (action-namespaced
// first), then us-east-1.
func NewSourceRegionFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "source-region",
		Aliases: []string{"s"},
		Usage:   "source region of the parameter group",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWS_DEFAULT_REGION"),
			yaml.YAML(ns+".source_region", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("source_region", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "us-east-1",
	}
}

// NewGlobalFlags builds the output-shaping flags shared by every action.
// params[0] is the config namespace used for file-sourced defaults.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored table output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "comma-separated list of columns to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with table output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

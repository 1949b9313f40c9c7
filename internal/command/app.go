// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/rdspggo/internal/config"
	"github.com/staranto/rdspggo/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	sd, _ := os.Getwd()

	// The action doubles as the namespace key used when retrieving config
	// values, so compare/copy/diff/merge can carry their own defaults in the
	// config file.
	ns := actionNamespace(args)

	cfg, _ := config.Load(ns)
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:      "rdspg",
		Usage:     "RDS Parameter Group Control",
		UsageText: `rdspg -a {compare,copy,diff,merge} -p SOURCE_GROUP [-s SOURCE_REGION] -d DEST_GROUP [-w DEST_REGION] [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "rdspg version info",
				HideDefault: true,
			},
			actionFlag,
			sourceGroupFlag,
			NewSourceRegionFlag(ns),
			destGroupFlag,
			destRegionFlag,
			dryRunFlag,
			yesFlag,
		}, NewGlobalFlags(ns)...),
		Commands: []*cli.Command{
			CompletionCommandBuilder(m),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := RootCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return RootCommandAction(ctx, cmd)
		},
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// RootCommandAction dispatches to the action handler selected by -a.
func RootCommandAction(ctx context.Context, cmd *cli.Command) error {
	switch cmd.String("action") {
	case "compare", "diff":
		return CompareCommandAction(ctx, cmd)
	case "copy":
		return CopyCommandAction(ctx, cmd)
	case "merge":
		return MergeCommandAction(ctx, cmd)
	default:
		// The flag validator catches this first; belt and suspenders for
		// programmatic callers.
		return fmt.Errorf("unknown action: %s", cmd.String("action"))
	}
}

// RootCommandValidator checks the flags that every action needs. The flags
// are not marked Required so that the completion subcommand and --help work
// without them.
func RootCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := GlobalFlagsValidator(ctx, cmd); err != nil {
		return err
	}

	for _, f := range []string{"action", "parameter-group", "dest-parameter-group"} {
		if cmd.String(f) == "" {
			return fmt.Errorf("required flag --%s not set", f)
		}
	}

	return nil
}

// actionNamespace sniffs the -a/--action value out of raw args so the config
// namespace is known before the cli parses anything.
func actionNamespace(args []string) string {
	for i, a := range args {
		switch {
		case a == "-a" || a == "--action":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "-a="):
			return strings.TrimPrefix(a, "-a=")
		case strings.HasPrefix(a, "--action="):
			return strings.TrimPrefix(a, "--action=")
		}
	}
	return ""
}

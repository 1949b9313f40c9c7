// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/rdspggo/internal/reconcile"
)

// MergeCommandAction is the handler for -a merge. It folds the source group
// into the destination: parameters missing from the destination are copied,
// parameters that differ take the source's value, and destination-only
// parameters are left untouched.
func MergeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	clients, err := NewClients(ctx, cmd)
	if err != nil {
		return err
	}

	srcName := cmd.String("parameter-group")
	dstName := cmd.String("dest-parameter-group")

	src, err := clients.Source.Group(ctx, srcName)
	if err != nil {
		return err
	}

	dst, err := clients.Dest.Group(ctx, dstName)
	if err != nil {
		return err
	}

	cs := reconcile.Merge(src, dst)
	if len(cs) == 0 {
		if humanOutput(cmd) {
			fmt.Println("No differences to merge.")
		}
		return nil
	}

	if cmd.Bool("dry-run") {
		if humanOutput(cmd) {
			fmt.Printf("Would merge %d parameters from '%s' into '%s':\n",
				len(cs), srcName, dstName)
		}
		return EmitChangeSet(cs, cmd, os.Stdout)
	}

	if !ConfirmApply(cmd, fmt.Sprintf("Merge %d parameters from '%s' into '%s'?",
		len(cs), srcName, dstName)) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}

	if humanOutput(cmd) {
		fmt.Printf("Merging differences from '%s' into '%s'.\n", srcName, dstName)
	}

	if err := clients.Dest.Apply(ctx, dstName, cs); err != nil {
		return err
	}

	if err := EmitChangeSet(cs, cmd, os.Stdout); err != nil {
		return err
	}

	if humanOutput(cmd) {
		fmt.Println("Complete.")
	}
	return nil
}

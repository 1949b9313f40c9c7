// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/rdspggo/internal/reconcile"
)

// CopyCommandAction is the handler for -a copy. It creates the destination
// group with the source's family and description, tags it with an origin
// trail, and posts every settable source parameter into it.
func CopyCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	// Copy targets a new group; refuse to stomp an existing one.
	names, err := clients.Dest.GroupNames(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(names, dstName) {
		return fmt.Errorf("parameter group %s already exists in %s", dstName, clients.Dest.Region)
	}

	cs := reconcile.Copy(src)

	if cmd.Bool("dry-run") {
		if humanOutput(cmd) {
			fmt.Printf("Would create %s with %s parameters:\n",
				dstName, humanize.Comma(int64(len(cs))))
		}
		return EmitChangeSet(cs, cmd, os.Stdout)
	}

	if !ConfirmApply(cmd, fmt.Sprintf("Create %s in %s with %d parameters?",
		dstName, clients.Dest.Region, len(cs))) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}

	if err := clients.Dest.CreateGroup(ctx, dstName, src.Family, src.Description,
		originTags(src.ARN, m.Args)); err != nil {
		return err
	}

	if humanOutput(cmd) {
		fmt.Printf("Created %s:\n", dstName)
		fmt.Printf("  Number of parameters to set: %s\n", humanize.Comma(int64(len(cs))))
	}

	if err := clients.Dest.Apply(ctx, dstName, cs); err != nil {
		return err
	}

	if humanOutput(cmd) {
		fmt.Println("Complete.")
	}
	return nil
}

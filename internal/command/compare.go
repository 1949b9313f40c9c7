// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/rdspggo/internal/output"
	"github.com/staranto/rdspggo/internal/reconcile"
)

// compareCols are the row keys emitted for compare and diff results.
var compareCols = []string{"name", "source", "dest", "apply_type", "reboot"}

// engineDefault marks a parameter that is present but resting on the engine
// default, as opposed to one missing from the group entirely.
const engineDefault = "(engine default)"

// CompareCommandAction is the handler for -a compare and -a diff. It fetches
// both groups, computes the differences, and emits them per the output
// flags. compare additionally prints a summary header; diff prints only the
// differences.
func CompareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	clients, err := NewClients(ctx, cmd)
	if err != nil {
		return err
	}

	src, err := clients.Source.Group(ctx, cmd.String("parameter-group"))
	if err != nil {
		return err
	}

	dst, err := clients.Dest.Group(ctx, cmd.String("dest-parameter-group"))
	if err != nil {
		return err
	}

	// The summary is chatter for humans. Keep json/yaml/raw documents clean.
	if cmd.String("action") == "compare" && humanOutput(cmd) {
		printCompareSummary(src, dst, os.Stdout)
	}

	rows := diffRows(reconcile.Diff(src, dst))
	raw, err := marshalRows(rows)
	if err != nil {
		return err
	}

	output.SliceDiceSpit(raw, compareCols, cmd, os.Stdout, diffTextWriter)
	return nil
}

// diffRows flattens differences into the output pipeline's row shape. A side
// that is missing the parameter comes through as nil; a side resting on the
// engine default is called out as such.
func diffRows(diffs []reconcile.Difference) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(diffs))
	for _, d := range diffs {
		p := d.Source
		if p == nil {
			p = d.Dest
		}
		rows = append(rows, map[string]interface{}{
			"name":       d.Name,
			"source":     sideValue(d.Source),
			"dest":       sideValue(d.Dest),
			"apply_type": p.ApplyType,
			"reboot":     p.RequiresReboot(),
		})
	}
	return rows
}

func sideValue(p *reconcile.Parameter) interface{} {
	if p == nil {
		return nil
	}
	if !p.HasValue() {
		return engineDefault
	}
	return *p.Value
}

// diffTextWriter renders differences diff-style: the source side prefixed
// with < and the destination side with >.
func diffTextWriter(rows []map[string]interface{}, w io.Writer) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\n", output.InterfaceToString(row["name"], "-"))
		if row["source"] != nil {
			fmt.Fprintf(w, "< %s\n", output.InterfaceToString(row["source"], "-"))
		}
		if row["dest"] != nil {
			fmt.Fprintf(w, "> %s\n", output.InterfaceToString(row["dest"], "-"))
		}
	}
}

// printCompareSummary prints the group totals and calls out an engine family
// mismatch, which is indicative of many differences to follow.
func printCompareSummary(src, dst reconcile.Group, w io.Writer) {
	fmt.Fprintf(w, "Comparing %s and %s\n", src.Name, dst.Name)
	fmt.Fprintf(w, "    Number of source parameters to compare: %s\n",
		humanize.Comma(int64(len(src.Params))))
	fmt.Fprintf(w, "    Number of dest parameters to compare:   %s\n",
		humanize.Comma(int64(len(dst.Params))))

	if src.Family != dst.Family {
		fmt.Fprintln(w, "    Parameter group family mismatch.")
		fmt.Fprintf(w, "        Source family:      %s\n", src.Family)
		fmt.Fprintf(w, "        Destination family: %s\n", dst.Family)
	} else {
		fmt.Fprintf(w, "    Parameter group family: %s\n", src.Family)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "< Source parameter group name:      %s\n", src.Name)
	fmt.Fprintf(w, "> Destination parameter group name: %s\n", dst.Name)
}

// humanOutput reports whether the selected format tolerates chatter around
// the dataset.
func humanOutput(cmd *cli.Command) bool {
	o := cmd.String("output")
	return o == "text" || o == "table"
}

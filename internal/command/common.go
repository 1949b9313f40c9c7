// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/rdspggo/internal/meta"
	"github.com/staranto/rdspggo/internal/output"
	"github.com/staranto/rdspggo/internal/rds"
	"github.com/staranto/rdspggo/internal/reconcile"
)

// changeSetCols are the row keys emitted for copy and merge change sets.
var changeSetCols = []string{"name", "value", "apply_type"}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Clients holds the per-region RDS clients for one invocation.
type Clients struct {
	Source *rds.Client
	Dest   *rds.Client
}

// NewClients builds the source and destination clients from the region
// flags. When no destination region is given, the source region is assumed.
func NewClients(ctx context.Context, cmd *cli.Command) (Clients, error) {
	sourceRegion := cmd.String("source-region")
	destRegion := cmd.String("dest-region")
	if destRegion == "" {
		destRegion = sourceRegion
	}

	source, err := rds.NewClient(ctx, sourceRegion)
	if err != nil {
		return Clients{}, err
	}

	dest := source
	if destRegion != sourceRegion {
		dest, err = rds.NewClient(ctx, destRegion)
		if err != nil {
			return Clients{}, err
		}
	}

	log.Debugf("source region: %s, dest region: %s", sourceRegion, destRegion)
	return Clients{Source: source, Dest: dest}, nil
}

// ConfirmApply asks before a mutating action. It returns true when --yes is
// set or stdin is not a terminal (scripts and CI keep working); otherwise it
// prompts and accepts y/yes.
func ConfirmApply(cmd *cli.Command, prompt string) bool {
	if cmd.Bool("yes") {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}

	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// EmitChangeSet renders a change set through the common output pipeline.
// The text form matches the applied-parameter log lines: name = value.
func EmitChangeSet(cs reconcile.ChangeSet, cmd *cli.Command, w io.Writer) error {
	rows := make([]map[string]interface{}, 0, len(cs))
	for _, ch := range cs {
		rows = append(rows, map[string]interface{}{
			"name":       ch.Name,
			"value":      ch.Value,
			"apply_type": ch.ApplyType,
		})
	}

	raw, err := marshalRows(rows)
	if err != nil {
		return err
	}

	output.SliceDiceSpit(raw, changeSetCols, cmd, w, changeSetTextWriter)
	return nil
}

func changeSetTextWriter(rows []map[string]interface{}, w io.Writer) {
	for _, row := range rows {
		fmt.Fprintf(w, "    %s = %s\n",
			output.InterfaceToString(row["name"], "-"),
			output.InterfaceToString(row["value"], "-"))
	}
}

// marshalRows packages a dataset for the output pipeline.
func marshalRows(rows []map[string]interface{}) (bytes.Buffer, error) {
	var raw bytes.Buffer
	doc, err := json.Marshal(rows)
	if err != nil {
		return raw, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	raw.Write(doc)
	return raw, nil
}

// originTags builds the trail recorded on a copied group so its provenance
// survives in the destination region.
func originTags(sourceARN string, args []string) map[string]string {
	return map[string]string{
		"CopiedFrom":     sourceARN,
		"CopiedUsingCmd": strings.Join(args, " "),
		"Repo":           "github.com/staranto/rdspggo",
	}
}

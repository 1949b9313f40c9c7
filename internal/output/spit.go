// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/rdspggo/internal/config"
)

// TextWriter renders the dataset when --output=text. Each command supplies
// its own (diff-style lines for compare, name=value lines for change sets).
type TextWriter func(resultSet []map[string]interface{}, w io.Writer)

// SliceDiceSpit orchestrates filtering, sorting and rendering of a dataset
// according to command flags. raw holds the dataset as a JSON array whose
// objects carry the keys named in cols.
func SliceDiceSpit(raw bytes.Buffer,
	cols []string,
	cmd *cli.Command,
	w io.Writer,
	text TextWriter) {

	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	output := cmd.String("output")
	if output == "raw" {
		_, _ = w.Write(raw.Bytes())
		return
	}

	fullDataset := gjson.Parse(raw.String())

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a
	// smaller dataset.
	filteredDataset := FilterDataset(fullDataset, cols, cmd.String("filter"))

	SortDataset(filteredDataset, cmd.String("sort"))

	switch output {
	case "json":
		jsonOutput, err := json.Marshal(filteredDataset)
		if err != nil {
			slog.Error("SliceDiceSpit()", "err", err)
		}
		_, _ = w.Write(jsonOutput)
		fmt.Fprintln(w)
	case "yaml":
		yamlOutput, err := yaml.Marshal(filteredDataset)
		if err != nil {
			slog.Error("SliceDiceSpit()", "err", err)
		}
		_, _ = w.Write(yamlOutput)
	case "text":
		if text != nil {
			text(filteredDataset, w)
			return
		}
		TableWriter(filteredDataset, cols, cmd, w)
	default:
		TableWriter(filteredDataset, cols, cmd, w)
	}
}

// SortDataset orders rows by the comma-separated keys in spec. A leading '-'
// on a key sorts it descending. Rows missing a key sort first. An empty spec
// leaves the dataset in input order.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	keys := strings.Split(spec, ",")
	sort.SliceStable(resultSet, func(i, j int) bool {
		for _, key := range keys {
			if key == "" {
				continue
			}
			desc := strings.HasPrefix(key, "-")
			key := strings.TrimPrefix(key, "-")
			a := InterfaceToString(resultSet[i][key], "")
			b := InterfaceToString(resultSet[j][key], "")
			if a != b {
				return (a < b) != desc
			}
		}
		return false
	})
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	cols []string,
	cmd *cli.Command,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(cols))
		for _, col := range cols {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {

			pad, _ := config.GetInt("padding", 0)

			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(cols...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// InterfaceToString renders an arbitrary row value for display, substituting
// missing for nil.
func InterfaceToString(value interface{}, missing string) string {
	if value == nil {
		return missing
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%v", v)
	case float64:
		// JSON round-trips all numbers as float64; render integers plainly.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

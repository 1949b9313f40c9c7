// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "zebra", "value": "3"},
		{"name": "alpha", "value": "1"},
		{"name": "beta", "value": "2"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name",
			spec:      "name",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"zebra", "beta", "alpha"},
		},
		{
			name:      "ascending by value",
			spec:      "value",
			wantOrder: []string{"alpha", "beta", "zebra"},
		},
		{
			name:      "empty spec keeps input order",
			spec:      "",
			wantOrder: []string{"zebra", "alpha", "beta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	assert.Equal(t, "hello", InterfaceToString("hello", "-"))
	assert.Equal(t, "true", InterfaceToString(true, "-"))
	assert.Equal(t, "42", InterfaceToString(42.0, "-"))
	assert.Equal(t, "42.5", InterfaceToString(42.5, "-"))
	assert.Equal(t, "-", InterfaceToString(nil, "-"))
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "single exact match filter",
			spec: "name=max_connections",
			want: []Filter{
				{Key: "name", Operand: "=", Target: "max_connections"},
			},
		},
		{
			name: "prefix match filter",
			spec: "name^innodb_",
			want: []Filter{
				{Key: "name", Operand: "^", Target: "innodb_"},
			},
		},
		{
			name: "negated exact match",
			spec: "apply_type!=static",
			want: []Filter{
				{Key: "apply_type", Operand: "=", Target: "static", Negate: true},
			},
		},
		{
			name: "multiple filters",
			spec: "name^innodb_,apply_type=dynamic",
			want: []Filter{
				{Key: "name", Operand: "^", Target: "innodb_"},
				{Key: "apply_type", Operand: "=", Target: "dynamic"},
			},
		},
		{
			name: "invalid filter skipped",
			spec: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	raw := `[
		{"name": "innodb_buffer_pool_size", "value": "134217728", "apply_type": "static"},
		{"name": "max_connections", "value": "100", "apply_type": "dynamic"},
		{"name": "innodb_log_file_size", "value": "50331648", "apply_type": "static"}
	]`
	cols := []string{"name", "value", "apply_type"}

	tests := []struct {
		name      string
		spec      string
		wantNames []string
	}{
		{
			name:      "no filter keeps all",
			spec:      "",
			wantNames: []string{"innodb_buffer_pool_size", "max_connections", "innodb_log_file_size"},
		},
		{
			name:      "prefix filter",
			spec:      "name^innodb_",
			wantNames: []string{"innodb_buffer_pool_size", "innodb_log_file_size"},
		},
		{
			name:      "negated equality",
			spec:      "apply_type!=static",
			wantNames: []string{"max_connections"},
		},
		{
			name:      "regex filter",
			spec:      "name/_log_",
			wantNames: []string{"innodb_log_file_size"},
		},
		{
			name:      "conjunction",
			spec:      "name^innodb_,name@pool",
			wantNames: []string{"innodb_buffer_pool_size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(gjson.Parse(raw), cols, tt.spec)
			var names []string
			for _, row := range got {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

// runSpit runs SliceDiceSpit under a throwaway command so flag values come
// through the real cli parsing path.
func runSpit(t *testing.T, args []string, raw string, cols []string, text TextWriter) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "spit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var b bytes.Buffer
			b.WriteString(raw)
			SliceDiceSpit(b, cols, cmd, &buf, text)
			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"spit"}, args...))
	assert.NoError(t, err)
	return buf.String()
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	raw := `[{"name": "a", "value": "1"}, {"name": "b", "value": "2"}]`
	out := runSpit(t, []string{"--output", "json", "--filter", "name=b"}, raw, []string{"name", "value"}, nil)

	var rows []map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0]["name"])
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	raw := `[{"name": "a", "value": "1"}]`
	out := runSpit(t, []string{"--output", "yaml"}, raw, []string{"name", "value"}, nil)
	assert.Contains(t, out, "name: a")
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	raw := `[{"name": "a"}]`
	out := runSpit(t, []string{"--output", "raw"}, raw, []string{"name"}, nil)
	assert.Equal(t, raw, out)
}

func TestSliceDiceSpit_TextWriter(t *testing.T) {
	raw := `[{"name": "b", "value": "2"}, {"name": "a", "value": "1"}]`
	text := func(rows []map[string]interface{}, w io.Writer) {
		for _, r := range rows {
			_, _ = io.WriteString(w, r["name"].(string)+"\n")
		}
	}
	out := runSpit(t, []string{"--sort", "name"}, raw, []string{"name", "value"}, text)
	assert.Equal(t, "a\nb\n", out)
}

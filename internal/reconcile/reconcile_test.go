// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func param(name string, value *string) Parameter {
	return Parameter{Name: name, Value: value, ApplyType: "dynamic", Modifiable: true}
}

func group(name string, params ...Parameter) Group {
	return Group{Name: name, Family: "mysql8.0", Params: params}
}

func TestDiff_IdenticalGroupsIsEmpty(t *testing.T) {
	a := group("a",
		param("max_connections", strptr("100")),
		param("timeout", nil),
	)
	assert.Empty(t, Diff(a, a))
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		src  Group
		dst  Group
		want []string // names expected in the diff, in order
	}{
		{
			name: "missing from dest",
			src:  group("s", param("max_connections", strptr("100"))),
			dst:  group("d"),
			want: []string{"max_connections"},
		},
		{
			name: "missing from source",
			src:  group("s"),
			dst:  group("d", param("timeout", strptr("30"))),
			want: []string{"timeout"},
		},
		{
			name: "differing value",
			src:  group("s", param("max_connections", strptr("100"))),
			dst:  group("d", param("max_connections", strptr("50"))),
			want: []string{"max_connections"},
		},
		{
			name: "equal values omitted",
			src: group("s",
				param("max_connections", strptr("100")),
				param("timeout", strptr("30")),
			),
			dst: group("d",
				param("max_connections", strptr("100")),
				param("timeout", strptr("60")),
			),
			want: []string{"timeout"},
		},
		{
			name: "default vs explicit value differ",
			src:  group("s", param("wait_timeout", strptr("28800"))),
			dst:  group("d", param("wait_timeout", nil)),
			want: []string{"wait_timeout"},
		},
		{
			name: "both on engine default are equal",
			src:  group("s", param("wait_timeout", nil)),
			dst:  group("d", param("wait_timeout", nil)),
			want: nil,
		},
		{
			name: "sorted by name",
			src: group("s",
				param("zeta", strptr("1")),
				param("alpha", strptr("1")),
			),
			dst:  group("d", param("mid", strptr("1"))),
			want: []string{"alpha", "mid", "zeta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.src, tt.dst)
			var names []string
			for _, d := range got {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDiff_Sides(t *testing.T) {
	src := group("s", param("a", strptr("1")), param("b", strptr("2")))
	dst := group("d", param("b", strptr("3")), param("c", strptr("4")))

	diffs := Diff(src, dst)
	assert.Len(t, diffs, 3)

	// a: source only
	assert.NotNil(t, diffs[0].Source)
	assert.Nil(t, diffs[0].Dest)

	// b: both sides with their own values
	assert.Equal(t, "2", *diffs[1].Source.Value)
	assert.Equal(t, "3", *diffs[1].Dest.Value)

	// c: dest only
	assert.Nil(t, diffs[2].Source)
	assert.NotNil(t, diffs[2].Dest)
}

func TestDiff_SidesAreIndependentCopies(t *testing.T) {
	src := group("s",
		param("a", strptr("1")),
		param("b", strptr("2")),
		param("c", strptr("3")),
	)
	dst := group("d", param("b", strptr("9")))

	diffs := Diff(src, dst)
	assert.Len(t, diffs, 3)

	// Each difference carries its own parameter, not a shared one that a
	// later loop iteration could have overwritten.
	assert.Equal(t, "a", diffs[0].Source.Name)
	assert.Equal(t, "b", diffs[1].Source.Name)
	assert.Equal(t, "c", diffs[2].Source.Name)
	assert.NotSame(t, diffs[0].Source, diffs[2].Source)

	diffs[0].Source.Name = "mutated"
	assert.Equal(t, "b", diffs[1].Source.Name)
	assert.Equal(t, "c", diffs[2].Source.Name)
}

func TestCopy(t *testing.T) {
	src := group("s",
		param("b_set", strptr("100")),
		param("a_set", strptr("50")),
		param("on_default", nil),
		Parameter{Name: "locked", Value: strptr("x"), ApplyType: "static", Modifiable: false},
	)

	cs := Copy(src)
	assert.Equal(t, ChangeSet{
		{Name: "a_set", Value: "50", ApplyType: "dynamic"},
		{Name: "b_set", Value: "100", ApplyType: "dynamic"},
	}, cs)
}

func TestCopy_OntoEmptyGroupReproducesSource(t *testing.T) {
	src := group("s",
		param("max_connections", strptr("100")),
		param("timeout", strptr("30")),
	)

	// Apply the changeset to an empty group and re-diff: nothing settable
	// should remain different.
	dst := group("d")
	for _, c := range Copy(src) {
		v := c.Value
		dst.Params = append(dst.Params, Parameter{
			Name: c.Name, Value: &v, ApplyType: c.ApplyType, Modifiable: true,
		})
	}

	assert.Empty(t, Diff(src, dst))
}

func TestMerge_WorkedExample(t *testing.T) {
	// Source has {max_connections: 100}, dest has {max_connections: 50,
	// timeout: 30}. Merge yields only max_connections; timeout is untouched.
	src := group("s", param("max_connections", strptr("100")))
	dst := group("d",
		param("max_connections", strptr("50")),
		param("timeout", strptr("30")),
	)

	cs := Merge(src, dst)
	assert.Equal(t, ChangeSet{
		{Name: "max_connections", Value: "100", ApplyType: "dynamic"},
	}, cs)
}

func TestMerge_SkipsSourceDefaults(t *testing.T) {
	src := group("s",
		param("set_here", strptr("1")),
		param("on_default", nil),
	)
	dst := group("d")

	cs := Merge(src, dst)
	assert.Len(t, cs, 1)
	assert.Equal(t, "set_here", cs[0].Name)
}

func TestMerge_ThenRediffIsClean(t *testing.T) {
	src := group("s",
		param("a", strptr("1")),
		param("b", strptr("2")),
	)
	dst := group("d",
		param("b", strptr("9")),
		param("c", strptr("3")),
	)

	merged := group("d")
	merged.Params = append(merged.Params, dst.Params...)
	idx := map[string]int{}
	for i, p := range merged.Params {
		idx[p.Name] = i
	}
	for _, c := range Merge(src, dst) {
		v := c.Value
		if i, ok := idx[c.Name]; ok {
			merged.Params[i].Value = &v
		} else {
			merged.Params = append(merged.Params, Parameter{
				Name: c.Name, Value: &v, ApplyType: c.ApplyType, Modifiable: true,
			})
		}
	}

	// Every name present in the source now matches; only dest-only names
	// may remain in the diff.
	for _, d := range Diff(src, merged) {
		assert.Nil(t, d.Source, "unexpected residual difference for %s", d.Name)
	}
}

func TestRequiresReboot(t *testing.T) {
	assert.True(t, Parameter{ApplyType: "static"}.RequiresReboot())
	assert.False(t, Parameter{ApplyType: "dynamic"}.RequiresReboot())
}

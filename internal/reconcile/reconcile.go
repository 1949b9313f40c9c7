// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"sort"
)

// Parameter is a single engine setting within a parameter group. A nil Value
// means the engine default is in effect; an explicit value that happens to
// equal the engine default is still a value.
type Parameter struct {
	Name       string  `json:"name"`
	Value      *string `json:"value"`
	ApplyType  string  `json:"apply_type"`
	Modifiable bool    `json:"modifiable"`
}

// HasValue reports whether the parameter carries a settable value.
func (p Parameter) HasValue() bool {
	return p.Value != nil
}

// RequiresReboot reports whether applying the parameter needs an instance
// reboot. RDS marks such parameters with the "static" apply type.
func (p Parameter) RequiresReboot() bool {
	return p.ApplyType == "static"
}

// Group is a named parameter group as read from one region.
type Group struct {
	Name        string
	Family      string
	Description string
	ARN         string
	Params      []Parameter
}

// byName indexes the group's parameters. Names are unique within a group.
func (g Group) byName() map[string]Parameter {
	m := make(map[string]Parameter, len(g.Params))
	for _, p := range g.Params {
		m[p.Name] = p
	}
	return m
}

// Difference is one parameter that is not identical between two groups. A
// nil side means the parameter is missing from that group.
type Difference struct {
	Name   string
	Source *Parameter
	Dest   *Parameter
}

// Change is one (name, value) pair to post to a destination group.
type Change struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	ApplyType string `json:"apply_type"`
}

// ChangeSet is an ordered (name-sorted) sequence of changes.
type ChangeSet []Change

// Diff returns, in name order, every parameter present in either group whose
// value differs between the two, including parameters missing from one side.
// Parameters with identical values are omitted.
func Diff(src, dst Group) []Difference {
	srcIdx := src.byName()
	dstIdx := dst.byName()

	var diffs []Difference
	for name, sp := range srcIdx {
		dp, ok := dstIdx[name]
		if !ok {
			diffs = append(diffs, Difference{Name: name, Source: &sp})
			continue
		}
		if !valueEqual(sp.Value, dp.Value) {
			diffs = append(diffs, Difference{Name: name, Source: &sp, Dest: &dp})
		}
	}

	for name, dp := range dstIdx {
		if _, ok := srcIdx[name]; ok {
			continue
		}
		diffs = append(diffs, Difference{Name: name, Dest: &dp})
	}

	sort.Slice(diffs, func(i, j int) bool {
		return diffs[i].Name < diffs[j].Name
	})

	return diffs
}

// Copy returns a ChangeSet that reproduces every modifiable parameter of the
// source that carries a value. Parameters resting on the engine default have
// nothing to post and are skipped.
func Copy(src Group) ChangeSet {
	var cs ChangeSet
	for _, p := range src.Params {
		if !p.Modifiable || !p.HasValue() {
			continue
		}
		cs = append(cs, Change{Name: p.Name, Value: *p.Value, ApplyType: p.ApplyType})
	}

	sort.Slice(cs, func(i, j int) bool {
		return cs[i].Name < cs[j].Name
	})

	return cs
}

// Merge returns the ChangeSet that folds the source group into the
// destination: parameters present in the source but absent from the
// destination, plus parameters present in both with a different value,
// taking the source's value. Destination-only parameters are untouched.
// A source parameter without a value has nothing to post and is skipped.
func Merge(src, dst Group) ChangeSet {
	var cs ChangeSet
	for _, d := range Diff(src, dst) {
		if d.Source == nil || !d.Source.HasValue() {
			continue
		}
		cs = append(cs, Change{
			Name:      d.Name,
			Value:     *d.Source.Value,
			ApplyType: d.Source.ApplyType,
		})
	}
	return cs
}

// valueEqual compares two optional values. Two engine defaults (nil) are
// equal; a default never equals an explicit value.
func valueEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

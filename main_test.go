// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runMain(t *testing.T, args ...string) int {
	t.Helper()

	old := os.Args
	defer func() { os.Args = old }()
	os.Args = append([]string{"rdspg"}, args...)

	return realMain()
}

func TestRealMain_NoArgsFails(t *testing.T) {
	assert.Equal(t, 1, runMain(t))
}

func TestRealMain_Version(t *testing.T) {
	assert.Equal(t, 0, runMain(t, "--version"))
}

func TestRealMain_MissingRequiredFlags(t *testing.T) {
	// An action without the group flags fails validation.
	assert.Equal(t, 2, runMain(t, "-a", "compare"))
}

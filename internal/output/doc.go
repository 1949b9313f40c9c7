// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders result sets (differences, change sets) in text,
// table, json, yaml, or raw form, applying --filter and --sort first.
package output

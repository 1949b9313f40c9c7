// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the rdspg CLI surface: the root command, its
// flags, and the compare/copy/merge action handlers.
package command

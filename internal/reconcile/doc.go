// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package reconcile computes diff, copy, and merge plans over parameter
// groups. It is pure: callers fetch groups and apply change sets.
package reconcile

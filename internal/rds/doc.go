// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package rds adapts the AWS RDS parameter group API (describe, create,
// modify) to the reconciler's types, handling pagination and the modify
// chunk limit.
package rds

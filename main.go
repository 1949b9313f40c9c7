// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/staranto/rdspggo/internal/command"
	mylog "github.com/staranto/rdspggo/internal/log"
	"github.com/staranto/rdspggo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	// No arguments at all is a usage error. Show help, but still fail.
	noArgs := len(args) < 2
	if noArgs {
		fmt.Fprintln(os.Stderr, "No action specified.")
		args = append(args, "--help")
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if noArgs {
		return 1
	}
	return 0
}

// Copyright 2025 The txcore Authors
// This file is part of txcore.
//
// txcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// txcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with txcore. If not, see <http://www.gnu.org/licenses/>.

// txtool is a command-line tool for signing, verifying and inspecting legacy
// Ethereum transactions.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/txcore/internal/debug"
	"github.com/sunyihoo/txcore/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("legacy transaction signing and verification tool")

func init() {
	app.Commands = []*cli.Command{
		// See keycmd.go:
		keygenCommand,
		addressCommand,
		// See txcmd.go:
		signCommand,
		verifyCommand,
		hashCommand,
		decodeCommand,
		// See chaincmd.go:
		chainCommand,
		// See config.go:
		dumpConfigCommand,
	}
	app.Flags = flags.Merge([]cli.Flag{configFileFlag}, debug.Flags)

	app.Before = func(ctx *cli.Context) error {
		if err := applyLogConfig(ctx); err != nil {
			return err
		}
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

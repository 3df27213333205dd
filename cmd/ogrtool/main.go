// Copyright 2024 Planet Labs PBC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/planetlabs/ogrtool/cmd/ogrtool/command"
	"github.com/planetlabs/ogrtool/internal/ogr"
	"golang.org/x/term"
)

var (
	version = "development"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	parser := kong.Must(&command.CLI,
		kong.Name("ogrtool"),
		kong.Description("A tool for performing simple tasks with OGR."),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(false)
		}
		parser.Exit(command.ExitCode(err))
		return
	}

	if command.CLI.NoColor || !term.IsTerminal(int(os.Stderr.Fd())) {
		color.NoColor = true
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	env := command.NewEnv(runCtx, &command.CLI.Globals, ogr.NewExecRunner(), os.Stdout, os.Stderr)
	err = ctx.Run(env, &command.VersionInfo{Version: version, Commit: commit, Date: date})
	stop()
	if err == nil {
		return
	}

	// the external tool has already explained itself on stderr
	var exitErr *ogr.ExitError
	if !errors.As(err, &exitErr) {
		ctx.Errorf("%s", err)
	}
	ctx.Kong.Exit(command.ExitCode(err))
}

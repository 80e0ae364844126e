// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/urfave/cli/v2"

	jma "github.com/ianlewis/go-jma"
	"github.com/ianlewis/go-jma/ctype"
	"github.com/ianlewis/go-jma/engine"
	"github.com/ianlewis/go-jma/internal/tracelog"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrJmautil is a parent error for all command errors.
var ErrJmautil = errors.New("jmautil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrJmautil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// setupLogging sends the diagnostics of all packages to the error writer.
func setupLogging(c *cli.Context) error {
	v := c.String("log-level")
	level := tracing.TraceLevelFromString(v)
	if !strings.EqualFold(level.String(), v) {
		return fmt.Errorf("%w: unknown log level %q", ErrFlagParse, v)
	}
	tracelog.Install(c.App.ErrWriter, level)
	return nil
}

// newKnowledge returns a Knowledge configured by the global flags and the
// profile, if any. The dictionaries are not loaded.
func newKnowledge(c *cli.Context) (*jma.Knowledge, error) {
	enc, err := ctype.ParseEncoding(c.String("encoding"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	k := jma.New(&jma.Options{
		Encoding: enc,
		Engine: engine.NewExec(&engine.ExecOptions{
			DictIndex: c.String("dict-index"),
			Analyzer:  c.String("analyzer"),
		}),
	})
	k.SetSystemDict(c.String("dict-dir"))

	if path := c.String("profile"); path != "" {
		p, err := jma.LoadProfileFile(path)
		if err != nil {
			return nil, err
		}
		if err := p.Apply(k); err != nil {
			return nil, err
		}
		// Flags given on the command line take precedence.
		if c.IsSet("encoding") {
			k.SetEncoding(enc)
		}
		if c.IsSet("dict-dir") {
			k.SetSystemDict(c.String("dict-dir"))
		}
	}

	return k, nil
}

func newJmautilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build and inspect Japanese morphological analysis dictionaries.",
		Description: strings.Join([]string{
			"Dictionary utility written in Go.",
			"http://github.com/ianlewis/go-jma",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dict-dir",
				Usage:   "use the system dictionary in `DIR`",
				Aliases: []string{"d"},
				Value:   dictLocation(),
			},
			&cli.StringFlag{
				Name:    "encoding",
				Usage:   "analyze text in `ENCODING` (EUC-JP, SHIFT-JIS, UTF-8)",
				Aliases: []string{"e"},
				Value:   jma.DefaultOptions.Encoding.String(),
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "read dictionary settings from YAML `FILE`",
				Aliases: []string{"p"},
			},
			&cli.StringFlag{
				Name:  "dict-index",
				Usage: "dictionary compiler `COMMAND`",
				Value: engine.DefaultExecOptions.DictIndex,
			},
			&cli.StringFlag{
				Name:  "analyzer",
				Usage: "analyzer `COMMAND`",
				Value: engine.DefaultExecOptions.Analyzer,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "print diagnostics at `LEVEL` (Error, Info, Debug)",
				Aliases: []string{"l"},
				Value:   tracing.LevelInfo.String(),
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Before: setupLogging,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			encodeCommand(),
			loadCommand(),
			configCommand(),
			resourcesCommand(),
			posCommand(),
			userdicCommand(),
		},
	}
}

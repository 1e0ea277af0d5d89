// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
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
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-kys"
	"github.com/ianlewis/go-kys/script"
	"github.com/ianlewis/go-kys/textenc"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrKysutil is a parent error for all command errors.
var ErrKysutil = errors.New("kysutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrKysutil)

// ErrNoResources indicates that no resource directory could be opened.
var ErrNoResources = fmt.Errorf("%w: no resources found", ErrKysutil)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` adds it
	// to every command, and the --help flag below is handled by the root
	// Action instead.
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

func newKysutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search and disassemble KYS event scripts.",
		Description: strings.Join([]string{
			"KYS kdef/talk resource utility written in Go.",
			"http://github.com/ianlewis/go-kys",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "read resources from `DIR`",
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(resourceLocations()...),
			},
			&cli.StringFlag{
				Name:  "opcodes",
				Usage: "read the opcode table from YAML `FILE`",
			},
			&cli.StringSliceFlag{
				Name:    "encoding",
				Usage:   "try text `ENCODING` (repeatable, in order)",
				Aliases: []string{"e"},
			},
			&cli.UintFlag{
				Name:  "mask",
				Usage: "XOR talk data with `BYTE` before decoding",
			},
			&cli.BoolFlag{
				Name:               "no-color",
				Usage:              "disable colored output",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log skipped records",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
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
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		HideHelp:        true,
		HideHelpCommand: true,
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			if f, ok := c.App.Writer.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
				color.NoColor = true
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			infoCommand,
			searchCommand,
			dumpCommand,
			textCommand,
			opcodesCommand,
		},
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, c.App.Copyright, versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrKysutil, err)
	}
	return nil
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
}

// scannerOptions builds kys.Options from the global flags.
func scannerOptions(c *cli.Context) (*kys.Options, error) {
	opts := &kys.Options{
		Logger: newLogger(c),
	}

	if path := c.String("opcodes"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrKysutil, err)
		}
		defer f.Close()

		opts.Table, err = script.LoadTable(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrFlagParse, path, err)
		}
	}

	m := c.Uint("mask")
	if m > 0xff {
		return nil, fmt.Errorf("%w: mask %d is larger than a byte", ErrFlagParse, m)
	}

	encodings, err := encodingsFlag(c)
	if err != nil {
		return nil, err
	}
	opts.Text = textenc.New(&textenc.Options{
		Encodings: encodings,
		//nolint:gosec // bounds checked above.
		Mask: byte(m),
	})

	return opts, nil
}

func encodingsFlag(c *cli.Context) ([]textenc.Encoding, error) {
	var encodings []textenc.Encoding
	for _, name := range c.StringSlice("encoding") {
		e, err := textenc.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
		}
		encodings = append(encodings, e)
	}
	return encodings, nil
}

// openScanner opens the resources in the first data directory that has
// them.
func openScanner(c *cli.Context) (*kys.Scanner, string, error) {
	opts, err := scannerOptions(c)
	if err != nil {
		return nil, "", err
	}

	var errs []error
	for _, dir := range c.StringSlice("data-dir") {
		s, err := kys.Open(dir, opts)
		if err == nil {
			return s, dir, nil
		}
		opts.Logger.Debug("no resources", "dir", dir, "err", err)
		errs = append(errs, err)
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoResources, errors.Join(errs...))
}

// parseIDs parses integer arguments.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a record id", ErrFlagParse, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

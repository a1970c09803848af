// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"fillmore-labs.com/syncguard/analyzer"
	"fillmore-labs.com/syncguard/profile"
)

// errFindings is returned by commands that reported findings.
var errFindings = errors.New("findings reported")

type globals struct {
	stdout, stderr io.Writer
	color          string
	profile        string
	verbose        bool
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, error) {
	g := &globals{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           analyzer.Name,
		Short:         "Check Java sources for monitor and serialization pitfalls",
		Long:          analyzer.Doc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.color, "color", "auto", "colorize output (auto|on|off)")
	pf.StringVar(&g.profile, "profile", "", "rule profile (TOML)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log debug information")

	// Behavior flags of a default analyzer, for help and parsing; values are transferred in [globals.analyzer].
	template, err := analyzer.New()
	if err != nil {
		return nil, err
	}

	check := newCheckCmd(g)
	check.Flags().AddFlagSet(template.Flags())

	root.AddCommand(check, newFixCmd(g), newUIDCmd(g), newRulesCmd(g), newDumpCmd(g))

	return root, nil
}

func (g *globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{Level: level}))
}

// colored decides whether output written to w is colorized.
func (g *globals) colored(w io.Writer) (bool, error) {
	switch g.color {
	case "on", "always":
		return true, nil

	case "off", "never":
		return false, nil

	case "auto":
		f, ok := w.(*os.File)

		return ok && term.IsTerminal(int(f.Fd())), nil

	default:
		return false, fmt.Errorf("invalid --color value %q (auto|on|off)", g.color)
	}
}

// analyzer creates an analyzer configured by the profile, the behavior flags changed on
// the command line and opts, in that order.
func (g *globals) analyzer(flags *pflag.FlagSet, opts ...analyzer.Option) (*analyzer.Analyzer, error) {
	logger := g.logger()

	all := analyzer.Options{analyzer.WithLogger(logger)}

	if g.profile != "" {
		p, err := profile.Load(g.profile)
		if err != nil {
			return nil, err
		}

		popts, err := p.Options()
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", g.profile, err)
		}

		all = append(all, popts...)
	}

	all = append(all, opts...)

	a, err := analyzer.New(all...)
	if err != nil {
		return nil, err
	}

	flags.Visit(func(f *pflag.Flag) {
		if af := a.Flags().Lookup(f.Name); af != nil {
			err = errors.Join(err, af.Value.Set(f.Value.String()))
		}
	})

	if err != nil {
		return nil, err
	}

	logger.Debug("Analyzer configured", all.LogAttr())

	return a, nil
}

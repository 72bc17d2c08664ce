// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Command dpguard checks WPF dependency property code in C# sources.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/dpguard/analyzer"
	"fillmore-labs.com/dpguard/settings"
)

// errFindings signals a successful run that reported diagnostics.
var errFindings = errors.New("diagnostics reported")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	switch err := cmd.ExecuteContext(ctx); {
	case err == nil:
		return 0

	case errors.Is(err, errFindings):
		return 1

	default:
		fmt.Fprintln(stderr, "dpguard:", err) // ignore error

		return 2
	}
}

// cli holds the global flags of one invocation.
type cli struct {
	config   string
	verbose  bool
	color    string
	analyzer *recordedFlags
}

func newRootCmd() *cobra.Command {
	c := &cli{analyzer: newRecordedFlags()}

	root := &cobra.Command{
		Use:           analyzer.Name,
		Short:         "Check WPF dependency property code",
		Long:          analyzer.Doc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.config, "config", "", "configuration file (default: .dpguard.yaml or .dpguard.toml in the source tree)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "log debug output")
	pf.StringVar(&c.color, "color", "auto", "colorize output: auto, always or never")

	root.AddCommand(c.checkCmd(), c.fixCmd(), rulesCmd())

	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	switch c.color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q", c.color)
	}

	if c.verbose {
		h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(h))
	}

	return nil
}

// paint returns a color whose output honors the color mode.
func (c *cli) paint(attrs ...color.Attribute) *color.Color {
	p := color.New(attrs...)

	switch c.color {
	case "always":
		p.EnableColor()
	case "never":
		p.DisableColor()
	}

	return p
}

// analyze loads the sources under paths and checks them with the configured analyzer.
func (c *cli) analyze(cmd *cobra.Command, paths []string, opts ...analyzer.Option) (*analyzer.Sources, *analyzer.Result, error) {
	ctx := cmd.Context()

	if len(paths) == 0 {
		paths = []string{"."}
	}

	fileOpts, err := c.settings(paths[0])
	if err != nil {
		return nil, nil, err
	}

	opts = append(fileOpts, opts...)
	slog.DebugContext(ctx, "options", slog.Any("options", analyzer.Options(opts)))

	a := analyzer.New(opts...)

	flags := newFlagSet()
	a.RegisterFlags(flags)

	if err := c.analyzer.apply(flags); err != nil {
		return nil, nil, err
	}

	src, err := analyzer.Load(ctx, paths...)
	if err != nil {
		return nil, nil, err
	}

	for _, err := range src.Errors {
		slog.WarnContext(ctx, "syntax errors", slog.Any("error", err))
	}

	result, err := a.CheckSources(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	return src, result, nil
}

// settings returns the options of the configuration file given by --config or found
// above path.
func (c *cli) settings(path string) ([]analyzer.Option, error) {
	name := c.config
	if name == "" {
		dir := path
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			dir = filepath.Dir(path)
		}

		found, err := settings.Find(dir)
		if err != nil || found == "" {
			return nil, err
		}

		name = found
	}

	s, err := settings.Load(name)
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration", slog.String("file", name))

	opts, err := s.Options()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return opts, nil
}

// rulesCmd lists the rule catalogue.
func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, d := range analyzer.Catalogue() {
				if _, err := fmt.Fprintf(w, "%s\t%-7s\t%s\n", d.ID, d.Severity, d.Title); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	if strings.HasSuffix(word, "x") {
		return fmt.Sprintf("%d %ses", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

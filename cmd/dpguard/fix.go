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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/dpguard/analyzer"
	"fillmore-labs.com/dpguard/analyzer/level"
)

func (c *cli) fixCmd() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply suggested fixes",
		Long:  "Apply all non-conflicting fixes, including renames, to the C# files and directories given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, result, err := c.analyze(cmd, args, analyzer.WithFixes(level.FixesRename))
			if err != nil {
				return err
			}

			fixed, err := analyzer.Fix(result)
			if err != nil {
				return err
			}

			for _, s := range fixed.Skipped {
				slog.DebugContext(ctx, "fix skipped",
					slog.String("fix", s.Fix.Title), slog.String("reason", s.Reason))
			}

			files := make([]*analyzer.File, 0, len(fixed.Files))
			for f := range fixed.Files {
				files = append(files, f)
			}

			slices.SortFunc(files, func(a, b *analyzer.File) int { return strings.Compare(a.Name, b.Name) })

			w := cmd.OutOrStdout()

			for _, f := range files {
				if preview {
					d, err := analyzer.Diff(f, fixed)
					if err != nil {
						return err
					}

					if _, err := w.Write(d); err != nil {
						return err
					}

					continue
				}

				if err := writeFile(f.Name, fixed.Files[f]); err != nil {
					return err
				}
			}

			summary := c.paint(color.FgGreen)
			if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s in %s, %s skipped\n",
				summary.Sprint(plural(len(fixed.Applied), "fix")),
				plural(len(files), "file"), plural(len(fixed.Skipped), "fix")); err != nil {
				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "diff", false, "print a unified diff instead of writing files")
	cmd.Flags().AddGoFlagSet(c.analyzer.flagSet())

	return cmd
}

// writeFile replaces the contents of name, keeping its permissions.
func writeFile(name string, data []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}

	return os.WriteFile(name, data, info.Mode().Perm())
}

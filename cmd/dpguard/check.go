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
	"encoding/json"
	"fmt"
	"go/token"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/dpguard/analyzer"
)

func (c *cli) checkCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report dependency property diagnostics",
		Long:  "Check the C# files and directories given, or the current directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format %q", format)
			}

			src, result, err := c.analyze(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				err = writeJSON(w, src.Fset, result.Findings)
			} else {
				err = c.writeText(w, src.Fset, result.Findings)
			}

			if err != nil {
				return err
			}

			if len(result.Findings) > 0 {
				return errFindings
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().AddGoFlagSet(c.analyzer.flagSet())

	return cmd
}

// writeText prints one line per finding: position, severity, id and message.
func (c *cli) writeText(w io.Writer, fset *token.FileSet, findings []analyzer.Finding) error {
	pos := c.paint(color.Bold)
	id := c.paint(color.FgCyan)

	severity := map[analyzer.Severity]*color.Color{
		analyzer.SeverityHidden:  c.paint(color.Faint),
		analyzer.SeverityInfo:    c.paint(color.FgBlue),
		analyzer.SeverityWarning: c.paint(color.FgYellow),
		analyzer.SeverityError:   c.paint(color.FgRed, color.Bold),
	}

	for _, f := range findings {
		_, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			pos.Sprint(fset.Position(f.Pos)), severity[f.Severity].Sprint(f.Severity), id.Sprint(f.ID), f.Message)
		if err != nil {
			return err
		}
	}

	if len(findings) > 0 {
		_, err := fmt.Fprintln(w, plural(len(findings), "finding"))

		return err
	}

	return nil
}

type jsonPosition struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonFinding struct {
	ID       string       `json:"id"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Start    jsonPosition `json:"start"`
	End      jsonPosition `json:"end"`
	Fixes    []jsonFix    `json:"fixes,omitempty"`
}

type jsonFix struct {
	Message string     `json:"message"`
	Edits   []jsonEdit `json:"edits"`
}

type jsonEdit struct {
	Start   jsonPosition `json:"start"`
	End     jsonPosition `json:"end"`
	NewText string       `json:"new_text"`
}

func position(fset *token.FileSet, pos token.Pos) jsonPosition {
	p := fset.Position(pos)

	return jsonPosition{File: p.Filename, Line: p.Line, Column: p.Column}
}

// writeJSON prints the findings as a JSON array.
func writeJSON(w io.Writer, fset *token.FileSet, findings []analyzer.Finding) error {
	out := make([]jsonFinding, 0, len(findings))

	for _, f := range findings {
		jf := jsonFinding{
			ID:       f.ID,
			Severity: f.Severity.String(),
			Message:  f.Message,
			Start:    position(fset, f.Pos),
			End:      position(fset, f.End),
		}

		for _, fx := range f.Analysis().SuggestedFixes {
			edits := make([]jsonEdit, 0, len(fx.TextEdits))
			for _, e := range fx.TextEdits {
				edits = append(edits, jsonEdit{position(fset, e.Pos), position(fset, e.End), string(e.NewText)})
			}

			jf.Fixes = append(jf.Fixes, jsonFix{Message: fx.Message, Edits: edits})
		}

		out = append(out, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

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

package fix

import (
	"slices"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/syntax"
)

const contextLines = 3

// lineIndex maps byte offsets of a source to zero based lines.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}

	return lineIndex{src: src, starts: starts}
}

func (l lineIndex) lines() int { return len(l.starts) }

func (l lineIndex) lineOf(offset int) int {
	i, found := slices.BinarySearch(l.starts, offset)
	if !found {
		i--
	}

	return i
}

// start returns the offset of line, or the source length past the last line.
func (l lineIndex) start(line int) int {
	if line >= len(l.starts) {
		return len(l.src)
	}

	return l.starts[line]
}

func (l lineIndex) text(from, to int) string { return string(l.src[l.start(from):l.start(to)]) }

// change is a line range of the original source with the byte delta its edits introduce.
type change struct {
	from, to int // original lines [from, to)
	begin    int // original offset of line from
	delta    int
}

// UnifiedDiff renders the edits applied to file, resulting in fixed, as a unified diff.
func UnifiedDiff(file *syntax.File, edits []analysis.TextEdit, fixed []byte) ([]byte, error) {
	old := newLineIndex(file.Src)

	var changes []change

	for _, e := range edits {
		s, t := file.Offset(e.Pos), file.Offset(e.End)

		from := old.lineOf(s)
		to := from

		switch {
		case t > s:
			to = old.lineOf(t-1) + 1
		case s != old.start(from) || s == len(file.Src):
			to = from + 1
		}

		delta := len(e.NewText) - (t - s)

		if n := len(changes); n > 0 && from <= changes[n-1].to+2*contextLines {
			c := &changes[n-1]
			c.to = max(c.to, to)
			c.delta += delta

			continue
		}

		changes = append(changes, change{from: from, to: to, begin: old.start(from), delta: delta})
	}

	fd := &diff.FileDiff{OrigName: "a/" + file.Name, NewName: "b/" + file.Name}

	shift := 0 // byte shift of earlier changes
	lineShift := 0

	for _, c := range changes {
		before := max(0, c.from-contextLines)
		after := min(old.lines(), c.to+contextLines)

		begin := c.begin + shift
		end := old.start(c.to) + shift + c.delta
		replaced := splitLines(string(fixed[begin:end]))

		var body strings.Builder
		writeLines(&body, ' ', splitLines(old.text(before, c.from)))
		writeLines(&body, '-', splitLines(old.text(c.from, c.to)))
		writeLines(&body, '+', replaced)
		writeLines(&body, ' ', splitLines(old.text(c.to, after)))

		origLines := after - before
		newLines := origLines - (c.to - c.from) + len(replaced)

		fd.Hunks = append(fd.Hunks, &diff.Hunk{
			OrigStartLine: hunkStart(before, origLines),
			OrigLines:     int32(origLines),
			NewStartLine:  hunkStart(before+lineShift, newLines),
			NewLines:      int32(newLines),
			Body:          []byte(body.String()),
		})

		shift += c.delta
		lineShift += newLines - origLines
	}

	return diff.PrintFileDiff(fd)
}

// hunkStart is the one based start line, or the line before an empty range.
func hunkStart(line, count int) int32 {
	if count == 0 {
		return int32(line)
	}

	return int32(line + 1)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func writeLines(b *strings.Builder, prefix byte, lines []string) {
	for _, l := range lines {
		b.WriteByte(prefix) // ignore error
		b.WriteString(l)

		if !strings.HasSuffix(l, "\n") {
			b.WriteByte('\n')
		}
	}
}

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
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// ErrOverlap is returned when edits of one file overlap.
var ErrOverlap = errors.New("overlapping edits")

// Skipped is a fix that was not applied.
type Skipped struct {
	Fix    Fix
	Reason string
}

// Result is the outcome of [Apply].
type Result struct {
	// Files holds the new source of every changed file.
	Files map[*syntax.File][]byte

	// Edits holds the applied edits of every changed file, ordered by position.
	Edits map[*syntax.File][]analysis.TextEdit

	Applied []Fix
	Skipped []Skipped
}

// Apply applies fixes in order to the sources of files. A fix is skipped as a whole when it
// has no edits, touches text outside files or overlaps a previously selected fix.
func Apply(files []*syntax.File, fixes []Fix) (*Result, error) {
	result := &Result{Files: make(map[*syntax.File][]byte), Edits: make(map[*syntax.File][]analysis.TextEdit)}
	selected := make(map[*syntax.File][]analysis.TextEdit)

	for _, f := range fixes {
		buckets, reason := groupEditsByFile(files, f.TextEdits)
		if reason == "" {
			for file, edits := range buckets {
				if conflictsWithExisting(selected[file], edits) {
					reason = "conflicts with previously applied edits in " + file.Name

					break
				}
			}
		}

		if reason != "" {
			result.Skipped = append(result.Skipped, Skipped{Fix: f, Reason: reason})

			continue
		}

		for file, edits := range buckets {
			for _, e := range edits {
				if !slices.ContainsFunc(selected[file], func(o analysis.TextEdit) bool { return sameEdit(o, e) }) {
					selected[file] = append(selected[file], e)
				}
			}
		}

		result.Applied = append(result.Applied, f)
	}

	for file, edits := range selected {
		src, err := ApplyEdits(file, edits)
		if err != nil {
			return result, fmt.Errorf("%s: %w", file.Name, err)
		}

		if !bytes.Equal(src, file.Src) {
			slices.SortStableFunc(edits, func(a, b analysis.TextEdit) int { return cmp.Compare(a.Pos, b.Pos) })
			result.Files[file] = src
			result.Edits[file] = edits
		}
	}

	return result, nil
}

// groupEditsByFile splits edits by file, dropping duplicates. It returns a reason when the
// edits cannot be applied.
func groupEditsByFile(files []*syntax.File, edits []analysis.TextEdit) (map[*syntax.File][]analysis.TextEdit, string) {
	if len(edits) == 0 {
		return nil, "fix has no edits"
	}

	buckets := make(map[*syntax.File][]analysis.TextEdit)

	for _, e := range edits {
		file := fileAt(files, e.Pos)
		if file == nil || e.End < e.Pos || e.End > file.End() {
			return nil, "edit span out of range"
		}

		if slices.ContainsFunc(buckets[file], func(o analysis.TextEdit) bool { return sameEdit(o, e) }) {
			continue
		}

		if conflictsWithExisting(buckets[file], []analysis.TextEdit{e}) {
			return nil, "fix has overlapping edits"
		}

		buckets[file] = append(buckets[file], e)
	}

	return buckets, ""
}

// conflictsWithExisting reports whether any edit overlaps an existing one.
func conflictsWithExisting(existing, edits []analysis.TextEdit) bool {
	for _, e := range edits {
		for _, o := range existing {
			if spansConflict(o, e) {
				return true
			}
		}
	}

	return false
}

// spansConflict checks two edits for overlap. Spans are half-open, insertions conflict with
// insertions at the same position and with replacements strictly containing them.
func spansConflict(a, b analysis.TextEdit) bool {
	if sameEdit(a, b) {
		return false
	}

	switch {
	case a.Pos == a.End && b.Pos == b.End:
		return a.Pos == b.Pos
	case a.Pos == a.End:
		return b.Pos < a.Pos && a.Pos < b.End
	case b.Pos == b.End:
		return a.Pos < b.Pos && b.Pos < a.End
	}

	return a.Pos < b.End && b.Pos < a.End
}

func sameEdit(a, b analysis.TextEdit) bool {
	return a.Pos == b.Pos && a.End == b.End && bytes.Equal(a.NewText, b.NewText)
}

// ApplyEdits returns the source of f with the non-overlapping edits applied.
func ApplyEdits(f *syntax.File, edits []analysis.TextEdit) ([]byte, error) {
	sorted := slices.Clone(edits)

	// Apply from the end of the file, so earlier offsets stay valid
	slices.SortStableFunc(sorted, func(a, b analysis.TextEdit) int {
		if c := cmp.Compare(b.Pos, a.Pos); c != 0 {
			return c
		}

		return cmp.Compare(b.End, a.End)
	})

	src := slices.Clone(f.Src)
	limit := len(src)

	for _, e := range sorted {
		start, end := f.Offset(e.Pos), f.Offset(e.End)
		if start < 0 || end < start || end > limit {
			return nil, fmt.Errorf("edit [%d, %d): %w", start, end, ErrOverlap)
		}

		src = slices.Concat(src[:start], e.NewText, src[end:])
		limit = start
	}

	return src, nil
}

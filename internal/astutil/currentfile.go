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

package astutil

import (
	"go/token"
	"slices"
	"strings"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// generatedSuffixes are the file name endings of designer and build generated sources.
var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".designer.cs", ".generated.cs"}

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *syntax.File
	handle    *token.File
	generated bool
	pragmas   []Pragma
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and a *[syntax.File].
func NewCurrentFile(fset *token.FileSet, file *syntax.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.Pos())
	if handle == nil {
		return CurrentFile{}
	}

	return CurrentFile{file, handle, IsGenerated(file), slices.Collect(Pragmas(file))}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// File returns the syntax tree.
func (c CurrentFile) File() *syntax.File { return c.file }

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// Lines returns the number of lines n spans.
func (c CurrentFile) Lines(n syntax.Span) int {
	return c.line(n.End()) - c.line(n.Pos()) + 1
}

func (c CurrentFile) line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// Suppressed reports whether the rule id is disabled at pos by a preceding
// `#pragma warning disable` that is not yet restored.
func (c CurrentFile) Suppressed(id string, pos token.Pos) bool {
	disabled := false

	for _, p := range c.pragmas {
		if p.Pos >= pos {
			break
		}

		if p.Applies(id) {
			disabled = p.Disable
		}
	}

	return disabled
}

// IsGenerated reports whether f is generated code: a known generated file name suffix or an
// `<auto-generated>` marker in a comment before the first declaration.
func IsGenerated(f *syntax.File) bool {
	name := strings.ToLower(f.Name)
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	first := f.End()
	if len(f.Usings) > 0 {
		first = min(first, f.Usings[0].Pos())
	}

	if len(f.Attributes) > 0 {
		first = min(first, f.Attributes[0].Pos())
	}

	if len(f.Members) > 0 {
		first = min(first, f.Members[0].Pos())
	}

	for _, comment := range f.Comments {
		if comment.Pos() >= first {
			break
		}

		if strings.Contains(comment.Text, "<auto-generated") {
			return true
		}
	}

	return false
}

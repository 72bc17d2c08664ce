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
	"iter"
	"slices"
	"strings"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// Pragma is a `#pragma warning disable` or `#pragma warning restore` directive.
type Pragma struct {
	Pos     token.Pos
	Disable bool
	IDs     []string // empty for all rules
}

// Applies reports whether the pragma affects the rule id.
func (p Pragma) Applies(id string) bool {
	return len(p.IDs) == 0 || slices.ContainsFunc(p.IDs, func(s string) bool { return strings.EqualFold(s, id) })
}

// Pragmas yields the warning pragmas of f in source order.
func Pragmas(f *syntax.File) iter.Seq[Pragma] {
	return func(yield func(Pragma) bool) {
		for _, d := range f.Directives {
			p, ok := parsePragma(d)
			if !ok {
				continue // other directive
			}

			if !yield(p) {
				return
			}
		}
	}
}

func parsePragma(d syntax.Directive) (Pragma, bool) {
	text, _, _ := strings.Cut(d.Text, "//")

	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	if len(fields) < 3 || fields[0] != "pragma" || fields[1] != "warning" {
		return Pragma{}, false
	}

	p := Pragma{Pos: d.Hash}

	switch fields[2] {
	case "disable":
		p.Disable = true
	case "restore":
	default:
		return Pragma{}, false
	}

	for _, f := range fields[3:] {
		for id := range strings.SplitSeq(f, ",") {
			if id = strings.TrimSpace(id); id != "" {
				p.IDs = append(p.IDs, id)
			}
		}
	}

	return p, true
}

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

package level

import (
	"fmt"
	"strings"
)

// Fixes specifies which suggested fixes accompany diagnostics.
type Fixes uint8

const (
	// FixesSuggest attaches fixes that edit the reported syntax only.
	FixesSuggest Fixes = iota

	// FixesRename additionally renames symbols at all their uses in the compilation.
	FixesRename

	// FixesOff reports diagnostics without fixes.
	FixesOff
)

// MarshalText implements [encoding.TextMarshaler].
func (o Fixes) MarshalText() ([]byte, error) {
	switch o {
	case FixesSuggest:
		return []byte("suggest"), nil

	case FixesRename:
		return []byte("rename"), nil

	case FixesOff:
		return []byte("off"), nil

	default:
		return nil, fmt.Errorf("unknown fixes level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Fixes) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "true", "on", "suggest":
		*o = FixesSuggest

	case "rename", "full":
		*o = FixesRename

	case "off", "false":
		*o = FixesOff

	default:
		return fmt.Errorf("unknown fixes level %q", string(text))
	}

	return nil
}

// String returns the textual representation of the level.
func (o Fixes) String() string {
	b, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Fixes(%d)", o)
	}

	return string(b)
}

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

package level_test

import (
	"testing"

	. "fillmore-labs.com/dpguard/analyzer/level"
)

func TestFixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		want    Fixes
		wantErr bool
	}{
		{"", FixesSuggest, false},
		{"suggest", FixesSuggest, false},
		{"Rename", FixesRename, false},
		{"off", FixesOff, false},
		{"false", FixesOff, false},
		{"sometimes", FixesSuggest, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			var got Fixes

			err := got.UnmarshalText([]byte(tt.text))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %t, got %v", tt.wantErr, err)
			}

			if err != nil {
				return
			}

			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}

			text, err := got.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText failed: %v", err)
			}

			var again Fixes
			if err := again.UnmarshalText(text); err != nil || again != got {
				t.Errorf("Expected %v after round trip, got %v (%v)", got, again, err)
			}
		})
	}

	if _, err := Fixes(7).MarshalText(); err == nil {
		t.Error("Expected error for unknown level")
	}
}

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

package semantic_test

import (
	"testing"

	. "fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

const typeNames = `
namespace N.Models
{
    public class Item
    {
        public class Part
        {
        }
    }
}

namespace N.Views
{
    using N.Models;

    public class Host
    {
        public int InHost;
    }
}

namespace M
{
    using Gen = System.Collections.Generic;

    public class N
    {
    }

    public class Other
    {
        public int InOther;
    }
}

namespace T
{
    public class Types
    {
        public System.Collections.Generic.List<N.Models.Item> Items;
        public N.Models.Item.Part Part;
        public N.Models.Item[] Array;
        public int? Number;
        public string Text;
    }
}
`

func TestTypeName(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, typeNames)
	f := c.Files[0]

	field := func(t *testing.T, name string) *syntax.VarDeclarator {
		t.Helper()

		return testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator](name))
	}

	typeOf := func(t *testing.T, name string) Type {
		t.Helper()

		fld, ok := c.SymbolOf(field(t, name)).(*Field)
		if !ok {
			t.Fatalf("Field %s not bound", name)
		}

		return fld.Type()
	}

	tests := []struct {
		name  string
		field string
		site  string
		want  string
	}{
		{"imported", "Items", "InHost", "System.Collections.Generic.List<Item>"},
		{"nested", "Part", "InHost", "Item.Part"},
		{"array", "Array", "InHost", "Item[]"},
		{"nullable", "Number", "InHost", "int?"},
		{"keyword", "Text", "InHost", "string"},
		{"hidden namespace", "Items", "InOther", "System.Collections.Generic.List<global::N.Models.Item>"},
		{"hidden nested", "Part", "InOther", "global::N.Models.Item.Part"},
		{"declaring namespace", "Array", "Items", "N.Models.Item[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := c.TypeName(typeOf(t, tt.field), field(t, tt.site)); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

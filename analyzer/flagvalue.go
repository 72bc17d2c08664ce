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

package analyzer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/dpguard/analyzer/level"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/run"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// Set implements [flag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [flag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Get implements [flag.Getter].
func (f boolValue[_, B]) Get() any {
	var null B
	if f.flags == null {
		return false
	}

	return f.flags.Enabled(f.value)
}

// IsBoolFlag returns true to indicate that this is a boolean [flag.Value].
func (f boolValue[_, _]) IsBoolFlag() bool { return true }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

// fixesValue exposes the fix level of run options as a [flag.Value].
type fixesValue struct{ opts *run.Options }

// Set implements [flag.Value].
func (f fixesValue) Set(s string) error {
	var l level.Fixes
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return err
	}

	setFixes(f.opts, l)

	return nil
}

// String implements [flag.Value].
func (f fixesValue) String() string {
	if f.opts == nil {
		return level.FixesSuggest.String()
	}

	return fixesOf(f.opts).String()
}

// Get implements [flag.Getter].
func (f fixesValue) Get() any {
	if f.opts == nil {
		return level.FixesSuggest
	}

	return fixesOf(f.opts)
}

// idsValue disables or re-enables the rules of a comma separated id list.
type idsValue struct {
	opts     *run.Options
	disabled bool
}

// Set implements [flag.Value].
func (f idsValue) Set(s string) error {
	ids, err := parseIDs(s)
	if err != nil {
		return err
	}

	rulesOption{ids: ids, disabled: f.disabled}.apply(f.opts)

	return nil
}

// String implements [flag.Value].
func (f idsValue) String() string {
	if f.opts == nil || !f.disabled {
		return ""
	}

	return strings.Join(f.Get().([]string), ",")
}

// Get implements [flag.Getter].
func (f idsValue) Get() any {
	var ids []string

	if f.opts != nil {
		for id, off := range f.opts.Disabled {
			if off == f.disabled {
				ids = append(ids, id)
			}
		}
	}

	slices.Sort(ids)

	return ids
}

// parseIDs splits a comma separated list of rule ids, rejecting unknown ids.
func parseIDs(s string) ([]string, error) {
	var ids []string

	for id := range strings.SplitSeq(s, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		d, ok := report.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, id)
		}

		ids = append(ids, d.ID)
	}

	return ids, nil
}

// ErrUnknownRule is returned for rule ids missing from the [Catalogue].
var ErrUnknownRule = errors.New("unknown rule")

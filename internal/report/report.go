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

// Package report defines the diagnostic records produced by the rules and the catalogue of
// rule descriptors.
package report

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"fillmore-labs.com/dpguard/internal/config"
)

// Severity is the default reporting level of a rule.
type Severity uint8

//go:generate go tool stringer -type Severity -linecomment

// Severities.
const (
	Hidden  Severity = iota // hidden
	Info                    // info
	Warning                 // warning
	Error                   // error
)

// ErrUnknownSeverity is returned by [ParseSeverity] for unrecognized names.
var ErrUnknownSeverity = errors.New("unknown severity")

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(s string) (Severity, error) {
	for sev := Hidden; sev <= Error; sev++ {
		if strings.EqualFold(s, sev.String()) {
			return sev, nil
		}
	}

	return Hidden, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
}

// Descriptor describes one rule. Descriptors are immutable.
type Descriptor struct {
	ID       string
	Title    string
	Format   string // message format, filled with [fmt.Sprintf]
	Family   config.Family
	Severity Severity
}

// String returns the rule id.
func (d *Descriptor) String() string { return d.ID }

// Property keys carried by diagnostics for the fix synthesizers.
const (
	ExpectedName = "ExpectedName"
	ExpectedType = "ExpectedType"
	ExpectedText = "ExpectedText"
	Replacement  = "Replacement"
	Owner        = "Owner"
)

// Property is a single named piece of fix metadata.
type Property struct {
	Key, Value string
}

// Properties is an ordered list of fix metadata.
type Properties []Property

// Get returns the value for key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}

	return "", false
}

// Diagnostic is a single finding.
type Diagnostic struct {
	ID       string
	Severity Severity
	Message  string

	Pos, End token.Pos

	Properties Properties
}

// Node is anything with a source span.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// New creates a diagnostic for rule d spanning n, formatting d's message with args.
func New(d *Descriptor, n Node, args ...any) Diagnostic {
	return Diagnostic{
		ID:       d.ID,
		Severity: d.Severity,
		Message:  fmt.Sprintf(d.Format, args...),
		Pos:      n.Pos(),
		End:      n.End(),
	}
}

// With returns a copy of d with the property key set to value.
func (d Diagnostic) With(key, value string) Diagnostic {
	props := make(Properties, 0, len(d.Properties)+1)
	for _, p := range d.Properties {
		if p.Key != key {
			props = append(props, p)
		}
	}

	d.Properties = append(props, Property{Key: key, Value: value})

	return d
}

// Property returns the value of the property key.
func (d Diagnostic) Property(key string) (string, bool) { return d.Properties.Get(key) }

// String formats the diagnostic without position information.
func (d Diagnostic) String() string { return d.ID + ": " + d.Message }

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
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// ErrNoSources is returned when the given paths contain no C# source files.
var ErrNoSources = errors.New("no C# source files")

// Sources are C# files parsed into one file set.
type Sources struct {
	Fset  *token.FileSet
	Files []*File

	// Errors holds the syntax errors per file. Files with errors are still checked.
	Errors []error
}

// Load reads and parses the C# files named by paths. Directories are walked recursively,
// skipping build output and hidden directories.
func Load(ctx context.Context, paths ...string) (*Sources, error) {
	names, err := sourceFiles(paths)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, ErrNoSources
	}

	srcs := make([][]byte, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := os.ReadFile(name)
			if err != nil {
				return err
			}

			srcs[i] = src

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// token.FileSet bases grow with each file, keep them in name order
	s := &Sources{Fset: token.NewFileSet(), Files: make([]*File, 0, len(names))}

	for i, name := range names {
		f, err := syntax.Parse(s.Fset, name, srcs[i])
		if err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("parse %s: %w", name, err))
		}

		s.Files = append(s.Files, f)
	}

	return s, nil
}

// sourceFiles returns the sorted, unique C# file names under paths.
func sourceFiles(paths []string) ([]string, error) {
	var names []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			names = append(names, filepath.Clean(path))

			continue
		}

		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if name != path && skipDir(d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.EqualFold(filepath.Ext(name), ".cs") {
				names = append(names, name)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(names)

	return slices.Compact(names), nil
}

func skipDir(name string) bool {
	switch strings.ToLower(name) {
	case "bin", "obj", "node_modules":
		return true
	}

	return strings.HasPrefix(name, ".")
}

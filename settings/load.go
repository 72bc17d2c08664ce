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

package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for configuration files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown configuration format")

// Names are the configuration file names searched by [Find], in order.
var Names = []string{".dpguard.yaml", ".dpguard.yml", ".dpguard.toml"}

// Find returns the first configuration file in dir or its parents.
// It returns the empty string when none exists.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range Names {
			path := filepath.Join(dir, name)

			info, err := os.Stat(path)
			switch {
			case err == nil && !info.IsDir():
				return path, nil

			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return "", err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

// Load reads the configuration file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Decode parses configuration data in the format given by a file extension.
// Unknown keys are rejected.
func Decode(ext string, data []byte) (Settings, error) {
	var s Settings

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, err
		}

	case ".toml":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return Settings{}, err
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Settings{}, fmt.Errorf("unknown field %q", undecoded[0].String())
		}

	default:
		return Settings{}, fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}

	return s, nil
}

// Copyright 2024 Humanitec
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

package util

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormatter renders one of celerc's document outputs (CompDoc,
// ExecDoc, diagnostics) to a writer (spec §6 "exported document shapes").
// A tabular formatter isn't carried forward here: none of celerc's
// outputs are naturally tabular — they're nested documents, better
// served by JSON/YAML.
type OutputFormatter interface {
	Display()
}

type JSONOutputFormatter[T any] struct {
	Data T
	Out  io.Writer
}

type YAMLOutputFormatter[T any] struct {
	Data T
	Out  io.Writer
}

func (j *JSONOutputFormatter[T]) Display() {
	// Default to stdout if no output is provided
	if j.Out == nil {
		j.Out = os.Stdout
	}
	encoder := json.NewEncoder(j.Out)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(j.Data)
	if err != nil {
		slog.Error(err.Error())
	}
}

func (f *YAMLOutputFormatter[T]) Display() {
	// Default to stdout if no output is provided
	if f.Out == nil {
		f.Out = os.Stdout
	}

	encoder := yaml.NewEncoder(f.Out)
	if err := encoder.Encode(f.Data); err != nil {
		slog.Error(err.Error())
	}
}

/*
Copyright 2025 The Kubestrate Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apply

import "strings"

// Report aggregates the per-document outcomes of one apply batch,
// in document order.
type Report struct {
	lines  []string
	failed int
}

// Add appends a successful or informational outcome line.
func (r *Report) Add(line string) {
	r.lines = append(r.lines, line)
}

// Fail appends a failed outcome line.
func (r *Report) Fail(line string) {
	r.lines = append(r.lines, line)
	r.failed++
}

// Lines returns the outcome lines in document order.
func (r *Report) Lines() []string {
	return r.lines
}

// Failed tells whether any document in the batch failed. A partially
// failed batch is still a report, not an operation failure.
func (r *Report) Failed() bool {
	return r.failed > 0
}

// String renders the report as one line per document.
func (r *Report) String() string {
	return strings.Join(r.lines, "\n")
}

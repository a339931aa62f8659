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

package ops

import (
	"context"
	"fmt"
	"strings"
)

// Teardown deletes every tracked resource and renders a per-entry report.
// The ledger is cleared regardless of individual delete failures.
func (m *Manager) Teardown(ctx context.Context) (string, error) {
	results := m.tracker.Sweep(ctx, m.cluster, m.log)
	if len(results) == 0 {
		return "No tracked resources", nil
	}

	lines := make([]string, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			lines = append(lines, fmt.Sprintf("Failed to delete %s: %v", res.Entry, res.Err))
			continue
		}
		lines = append(lines, fmt.Sprintf("Deleted %s", res.Entry))
	}
	return strings.Join(lines, "\n"), nil
}

// Tracked renders the ledger of resources created through this layer.
func (m *Manager) Tracked() (string, error) {
	entries := m.tracker.List()
	if len(entries) == 0 {
		return "No tracked resources", nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Kind, e.Namespace, e.Name})
	}
	return renderTable([]string{"Kind", "Namespace", "Name"}, rows), nil
}

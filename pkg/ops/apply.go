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
)

// Apply upserts every document of a multi-document manifest and returns
// the per-document report. Individual document failures are reported in
// the output without aborting the batch.
func (m *Manager) Apply(ctx context.Context, manifest, namespace string, force bool) (string, error) {
	report := m.engine.Apply(ctx, manifest, namespace, force)
	if report.Failed() {
		m.log.Warn().Msg("one or more manifest documents failed to apply")
	}
	return report.String(), nil
}

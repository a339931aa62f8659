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

package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubestrate/kubestrate/pkg/cluster"
)

// SweepResult reports the outcome of one entry's delete attempt.
type SweepResult struct {
	Entry Entry
	Err   error
}

// Sweep deletes every tracked resource through the kind-appropriate API
// operation. A failed delete is logged and collected but never stops the
// remaining entries from being attempted, and the registry is cleared
// unconditionally once the pass is over: failed deletes are not retried
// on a later sweep.
func (t *Tracker) Sweep(ctx context.Context, client *cluster.Client, log zerolog.Logger) []SweepResult {
	entries := t.List()
	results := make([]SweepResult, 0, len(entries))

	for _, e := range entries {
		err := deleteEntry(ctx, client, e)
		if err != nil {
			log.Error().Err(err).
				Str("kind", e.Kind).
				Str("namespace", e.Namespace).
				Str("name", e.Name).
				Msg("failed to delete tracked resource")
		}
		results = append(results, SweepResult{Entry: e, Err: err})
	}

	t.Clear()
	return results
}

func deleteEntry(ctx context.Context, client *cluster.Client, e Entry) error {
	opts := metav1.DeleteOptions{}
	switch e.Kind {
	case "Deployment":
		return client.Apps().Deployments(e.Namespace).Delete(ctx, e.Name, opts)
	case "Service":
		return client.Core().Services(e.Namespace).Delete(ctx, e.Name, opts)
	case "Pod":
		return client.Core().Pods(e.Namespace).Delete(ctx, e.Name, opts)
	case "Job":
		return client.Batch().Jobs(e.Namespace).Delete(ctx, e.Name, opts)
	case "CronJob":
		return client.Batch().CronJobs(e.Namespace).Delete(ctx, e.Name, opts)
	case "Ingress":
		return client.Networking().Ingresses(e.Namespace).Delete(ctx, e.Name, opts)
	default:
		return fmt.Errorf("no delete operation for kind %s", e.Kind)
	}
}

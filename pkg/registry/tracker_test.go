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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/kubestrate/kubestrate/pkg/cluster"
)

func TestTracker(t *testing.T) {
	tracker := NewTracker()

	t.Run("same key is last write wins", func(t *testing.T) {
		tracker.Record("Deployment", "site", "default")
		tracker.Record("Service", "site", "default")

		entries := tracker.List()
		if len(entries) != 1 {
			t.Fatalf("expected one entry, got %d", len(entries))
		}
		if entries[0].Kind != "Service" {
			t.Errorf("expected the later record to win, got %s", entries[0].Kind)
		}
	})

	t.Run("listing is sorted by key", func(t *testing.T) {
		tracker.Clear()
		tracker.Record("Pod", "zeta", "default")
		tracker.Record("Pod", "alpha", "default")
		tracker.Record("Pod", "mid", "backend")

		var keys []string
		for _, e := range tracker.List() {
			keys = append(keys, e.Namespace+"/"+e.Name)
		}
		want := []string{"backend/mid", "default/alpha", "default/zeta"}
		if diff := cmp.Diff(want, keys); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	newFixture := func(objects ...runtime.Object) (*cluster.Client, *fake.Clientset) {
		clientset := fake.NewSimpleClientset(objects...)
		return cluster.NewWithInterface(clientset), clientset
	}

	t.Run("deletes every tracked entry and clears the registry", func(t *testing.T) {
		client, clientset := newFixture(
			&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "site", Namespace: "default"}},
			&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "worker", Namespace: "default"}},
		)

		tracker := NewTracker()
		tracker.Record("Service", "site", "default")
		tracker.Record("Pod", "worker", "default")

		results := tracker.Sweep(ctx, client, log)
		if len(results) != 2 {
			t.Fatalf("expected two results, got %d", len(results))
		}
		for _, r := range results {
			if r.Err != nil {
				t.Errorf("%s: unexpected error: %v", r.Entry, r.Err)
			}
		}
		if tracker.Len() != 0 {
			t.Error("registry not cleared after sweep")
		}

		if _, err := clientset.CoreV1().Services("default").Get(ctx, "site", metav1.GetOptions{}); !apierrors.IsNotFound(err) {
			t.Errorf("service still present: %v", err)
		}
	})

	t.Run("a failed delete does not stop the sweep", func(t *testing.T) {
		client, clientset := newFixture(
			&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "worker", Namespace: "default"}},
		)
		clientset.PrependReactor("delete", "services",
			func(action k8stesting.Action) (bool, runtime.Object, error) {
				return true, nil, apierrors.NewConflict(
					schema.GroupResource{Resource: "services"}, "site", nil)
			})

		tracker := NewTracker()
		tracker.Record("Service", "a-site", "default")
		tracker.Record("Pod", "worker", "default")

		results := tracker.Sweep(ctx, client, log)
		if len(results) != 2 {
			t.Fatalf("expected two results, got %d", len(results))
		}
		if results[0].Err == nil {
			t.Error("expected the service delete to fail")
		}
		if results[1].Err != nil {
			t.Errorf("pod delete should have been attempted: %v", results[1].Err)
		}
		if tracker.Len() != 0 {
			t.Error("registry must be cleared even after failures")
		}
	})

	t.Run("unknown kinds produce a per-entry failure", func(t *testing.T) {
		client, _ := newFixture()
		tracker := NewTracker()
		tracker.Record("Volcano", "etna", "default")

		results := tracker.Sweep(ctx, client, log)
		if len(results) != 1 || results[0].Err == nil {
			t.Fatalf("expected one failed result, got %+v", results)
		}
	})
}

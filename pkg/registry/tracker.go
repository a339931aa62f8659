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

// Package registry keeps the in-memory ledger of resources created through
// this layer so a later sweep can tear them down. The ledger does not
// survive a process restart.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Entry identifies one tracked resource.
type Entry struct {
	Kind      string
	Name      string
	Namespace string
}

// String returns the entry ID in the format <kind>/<namespace>/<name>.
func (e Entry) String() string {
	return fmt.Sprintf("%s/%s/%s", e.Kind, e.Namespace, e.Name)
}

func (e Entry) key() string {
	return e.Namespace + "/" + e.Name
}

// Tracker is the process-wide registry of created resources, keyed by
// namespace/name. It records current state, not history: a later
// creation under the same key overwrites the earlier entry.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: map[string]Entry{}}
}

// Record inserts or overwrites the entry for the given resource.
// It is called immediately after a successful create.
func (t *Tracker) Record(kind, name, namespace string) {
	e := Entry{Kind: kind, Name: name, Namespace: namespace}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[e.key()] = e
}

// List returns the tracked entries sorted by key for stable output.
func (t *Tracker) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.entries[k])
	}
	return out
}

// Len returns the number of tracked entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear removes every entry.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = map[string]Entry{}
}

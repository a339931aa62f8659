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

// Package ops is the operation surface of the orchestration layer. Each
// exported method performs one logical operation and returns a rendered
// result string. Remote API rejections are reported inside the result
// text so a batch of operations always produces output, a non-nil error
// means the request itself was malformed.
package ops

import (
	"github.com/rs/zerolog"

	"github.com/kubestrate/kubestrate/pkg/apply"
	"github.com/kubestrate/kubestrate/pkg/cluster"
	"github.com/kubestrate/kubestrate/pkg/invoke"
	"github.com/kubestrate/kubestrate/pkg/registry"
)

// Manager bundles the cluster facade, the resource tracker, the apply
// engine and the external tool runners. It is constructed once at startup
// and shared by all operations.
type Manager struct {
	cluster *cluster.Client
	tracker *registry.Tracker
	engine  *apply.Engine
	kubectl *invoke.Kubectl
	helm    *invoke.Helm
	log     zerolog.Logger
}

// NewManager returns a Manager wired to the given cluster client and
// tool runners.
func NewManager(client *cluster.Client, kubectl *invoke.Kubectl, helm *invoke.Helm, log zerolog.Logger) *Manager {
	return &Manager{
		cluster: client,
		tracker: registry.NewTracker(),
		engine:  apply.NewEngine(client),
		kubectl: kubectl,
		helm:    helm,
		log:     log,
	}
}

// Tracker exposes the resource ledger, mainly for tests and for the
// teardown listing.
func (m *Manager) Tracker() *registry.Tracker {
	return m.tracker
}

// Kubectl exposes the kubectl wrapper for the operations that are pure
// pass-throughs (nodes, namespaces, statefulsets, cluster info).
func (m *Manager) Kubectl() *invoke.Kubectl {
	return m.kubectl
}

// Helm exposes the helm wrapper.
func (m *Manager) Helm() *invoke.Helm {
	return m.helm
}

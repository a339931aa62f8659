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

package main

import (
	"context"
	"fmt"

	"github.com/kubestrate/kubestrate/pkg/cluster"
	"github.com/kubestrate/kubestrate/pkg/invoke"
	"github.com/kubestrate/kubestrate/pkg/ops"
)

// newManager builds the operation manager from the kubeconfig flag and
// the configured tool commands. The manager and its tracker live for a
// single invocation, so teardown and the tracked listing only cover
// resources created by the current command.
// TODO: a serve mode keeping one manager across requests would make
// the tracker useful beyond a single invocation.
func newManager() (*ops.Manager, error) {
	client, err := cluster.New(rootArgs.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("client init failed: %w", err)
	}

	kubectl, helm, err := newToolWrappers()
	if err != nil {
		return nil, err
	}

	return ops.NewManager(client, kubectl, helm, logger), nil
}

func newToolWrappers() (*invoke.Kubectl, *invoke.Helm, error) {
	kubectlRunner, err := invoke.NewRunner(cfg.Tools.Kubectl)
	if err != nil {
		return nil, nil, err
	}
	helmRunner, err := invoke.NewRunner(cfg.Tools.Helm)
	if err != nil {
		return nil, nil, err
	}
	return invoke.NewKubectl(kubectlRunner), invoke.NewHelm(helmRunner), nil
}

// operationContext returns a context bound to the timeout flag.
func operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rootArgs.timeout)
}

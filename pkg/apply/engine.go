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

// Package apply reconciles multi-document manifests onto the cluster,
// one document at a time. Each document is upserted through a per-kind
// strategy, a single document's failure never aborts the batch and
// documents already applied are never rolled back.
package apply

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/kubestrate/kubestrate/pkg/cluster"
	"github.com/kubestrate/kubestrate/pkg/objectutil"
)

// Engine dispatches manifest documents to per-kind upsert strategies.
type Engine struct {
	strategies map[string]Strategy
}

// NewEngine returns an engine with the built-in strategies registered.
func NewEngine(client *cluster.Client) *Engine {
	e := &Engine{strategies: map[string]Strategy{}}
	e.Register("ConfigMap", configMapStrategy{client: client.Core()})
	e.Register("Service", serviceStrategy{client: client.Core()})
	e.Register("Deployment", deploymentStrategy{client: client.Apps()})
	return e
}

// Register binds a kind to an upsert strategy, replacing any previous
// binding for that kind.
func (e *Engine) Register(kind string, s Strategy) {
	e.strategies[kind] = s
}

// Apply decodes the manifest into an ordered sequence of documents and
// upserts each one: read by name, replace wholesale when present, create
// when absent. A non-empty namespace overrides the namespace embedded in
// every document. Documents of kinds without a registered strategy are
// reported as unsupported and processing continues. When force is set,
// a replace rejected as invalid or conflicting deletes the object and
// recreates it.
func (e *Engine) Apply(ctx context.Context, manifest, namespace string, force bool) *Report {
	report := &Report{}

	objects, err := objectutil.ReadDocuments(strings.NewReader(manifest))
	if err != nil {
		report.Fail(fmt.Sprintf("Error parsing manifest: %v", err))
	}

	for _, obj := range objects {
		e.applyObject(ctx, obj, namespace, force, report)
	}

	return report
}

func (e *Engine) applyObject(ctx context.Context, obj *unstructured.Unstructured, namespace string, force bool, report *Report) {
	kind := obj.GetKind()

	strategy, ok := e.strategies[kind]
	if !ok {
		report.Add(fmt.Sprintf("Unsupported resource kind: %s", kind))
		return
	}

	if namespace != "" {
		obj.SetNamespace(namespace)
	}
	ns := obj.GetNamespace()
	if ns == "" {
		ns = "default"
		obj.SetNamespace(ns)
	}

	name := obj.GetName()
	if name == "" {
		report.Fail(fmt.Sprintf("Error applying %s: missing metadata.name", kind))
		return
	}

	err := strategy.Get(ctx, ns, name)
	switch {
	case err == nil:
		if err := e.replace(ctx, strategy, ns, obj, force); err != nil {
			report.Fail(fmt.Sprintf("Error applying %s %s: %v", kind, name, err))
			return
		}
		report.Add(fmt.Sprintf("%s %s updated successfully", kind, name))
	case apierrors.IsNotFound(err):
		if err := strategy.Create(ctx, ns, obj); err != nil {
			report.Fail(fmt.Sprintf("Error applying %s %s: %v", kind, name, err))
			return
		}
		report.Add(fmt.Sprintf("%s %s created successfully", kind, name))
	default:
		report.Fail(fmt.Sprintf("Error applying %s %s: %v", kind, name, err))
	}
}

func (e *Engine) replace(ctx context.Context, strategy Strategy, namespace string, obj *unstructured.Unstructured, force bool) error {
	err := strategy.Replace(ctx, namespace, obj)
	if err == nil || !force {
		return err
	}
	if !apierrors.IsInvalid(err) && !apierrors.IsConflict(err) {
		return err
	}

	// forced recreate for objects that reject in-place replacement
	if deleteErr := strategy.Delete(ctx, namespace, obj.GetName()); deleteErr != nil {
		return fmt.Errorf("delete before recreate failed: %w", deleteErr)
	}
	return strategy.Create(ctx, namespace, obj)
}

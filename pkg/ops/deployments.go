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
	"encoding/json"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/template"
)

// CreateDeploymentOptions hold the inputs of a deployment create.
type CreateDeploymentOptions struct {
	Name      string
	Namespace string
	Template  string
	Overrides *template.Overrides
	Replicas  int32
}

// CreateDeployment resolves a workload template, builds a deployment from
// it and creates it on the cluster. A created deployment is recorded in
// the tracker for later teardown.
func (m *Manager) CreateDeployment(ctx context.Context, opts CreateDeploymentOptions) (string, error) {
	cfg, err := template.Resolve(opts.Template, opts.Overrides)
	if err != nil {
		return "", err
	}

	replicas := opts.Replicas
	if replicas < 1 {
		replicas = 1
	}

	deployment, err := build.Deployment(opts.Name, opts.Namespace, cfg, replicas)
	if err != nil {
		return "", err
	}

	created, err := m.cluster.Apps().Deployments(opts.Namespace).Create(ctx, deployment, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("deployment", opts.Name).Msg("create failed")
		return fmt.Sprintf("Error creating deployment: %v", err), nil
	}

	m.tracker.Record("Deployment", opts.Name, opts.Namespace)
	return fmt.Sprintf("Deployment created successfully:\n%s", formatDeployment(created)), nil
}

// ListDeployments renders the deployments of a namespace, or of all
// namespaces when the namespace is empty.
func (m *Manager) ListDeployments(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Apps().Deployments(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting deployments: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No deployments found", nil
	}

	var blocks []string
	for i := range list.Items {
		blocks = append(blocks, formatDeployment(&list.Items[i]))
	}
	return formatBlocks(blocks), nil
}

// DescribeDeployment renders one deployment.
func (m *Manager) DescribeDeployment(ctx context.Context, name, namespace string) (string, error) {
	deployment, err := m.cluster.Apps().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing deployment: %v", err), nil
	}
	return formatDeployment(deployment), nil
}

// UpdateDeploymentOptions hold the patchable fields of a deployment.
// Absent fields are left untouched.
type UpdateDeploymentOptions struct {
	Name      string
	Namespace string
	Image     string
	Replicas  *int32
	Env       []template.EnvVar
}

// UpdateDeployment patches a deployment's image, replica count or
// container environment.
func (m *Manager) UpdateDeployment(ctx context.Context, opts UpdateDeploymentOptions) (string, error) {
	patch := map[string]interface{}{}
	spec := map[string]interface{}{}

	if opts.Replicas != nil {
		spec["replicas"] = *opts.Replicas
	}

	container := map[string]interface{}{"name": opts.Name}
	containerChanged := false
	if opts.Image != "" {
		container["image"] = opts.Image
		containerChanged = true
	}
	if opts.Env != nil {
		container["env"] = opts.Env
		containerChanged = true
	}
	if containerChanged {
		spec["template"] = map[string]interface{}{
			"spec": map[string]interface{}{
				"containers": []interface{}{container},
			},
		}
	}

	if len(spec) == 0 {
		return "", fmt.Errorf("nothing to update, specify an image, replicas or env")
	}
	patch["spec"] = spec

	data, err := json.Marshal(patch)
	if err != nil {
		return "", err
	}

	updated, err := m.cluster.Apps().Deployments(opts.Namespace).Patch(ctx, opts.Name,
		types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Sprintf("Error updating deployment: %v", err), nil
	}
	return fmt.Sprintf("Deployment updated successfully:\n%s", formatDeployment(updated)), nil
}

// ScaleDeployment sets the replica count of a deployment.
func (m *Manager) ScaleDeployment(ctx context.Context, name, namespace string, replicas int32) (string, error) {
	patch := fmt.Sprintf(`{"spec":{"replicas":%d}}`, replicas)
	if _, err := m.cluster.Apps().Deployments(namespace).Patch(ctx, name,
		types.StrategicMergePatchType, []byte(patch), metav1.PatchOptions{}); err != nil {
		return fmt.Sprintf("Error scaling deployment: %v", err), nil
	}
	return fmt.Sprintf("Deployment %s scaled to %d replicas", name, replicas), nil
}

// RolloutActions enumerates the supported rollout verbs.
var RolloutActions = []string{"status", "history", "restart", "undo"}

// RolloutDeployment performs a rollout action on a deployment. Undo rolls
// back to the previous revision through kubectl, it is not a restart.
func (m *Manager) RolloutDeployment(ctx context.Context, name, namespace, action string) (string, error) {
	switch action {
	case "status":
		deployment, err := m.cluster.Apps().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return fmt.Sprintf("Error performing rollout action: %v", err), nil
		}
		return formatDeployment(deployment), nil
	case "history":
		out, err := m.kubectl.RolloutHistory(ctx, "deployment", name, namespace)
		if err != nil {
			return fmt.Sprintf("Error performing rollout action: %v", err), nil
		}
		return out, nil
	case "restart":
		patch := fmt.Sprintf(
			`{"spec":{"template":{"metadata":{"annotations":{"kubectl.kubernetes.io/restartedAt":%q}}}}}`,
			time.Now().Format(time.RFC3339))
		if _, err := m.cluster.Apps().Deployments(namespace).Patch(ctx, name,
			types.StrategicMergePatchType, []byte(patch), metav1.PatchOptions{}); err != nil {
			return fmt.Sprintf("Error performing rollout action: %v", err), nil
		}
		return fmt.Sprintf("Deployment %s restarted", name), nil
	case "undo":
		out, err := m.kubectl.RolloutUndo(ctx, "deployment", name, namespace, 0)
		if err != nil {
			return fmt.Sprintf("Error performing rollout action: %v", err), nil
		}
		return out, nil
	default:
		return "", fmt.Errorf("invalid action %q, must be one of: status, history, restart, undo", action)
	}
}

// DeleteDeployment deletes a deployment.
func (m *Manager) DeleteDeployment(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Apps().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting deployment: %v", err), nil
	}
	return fmt.Sprintf("Deployment %s deleted successfully", name), nil
}

// ExposeDeployment creates a service selecting the deployment's pods.
// The service is recorded in the tracker under the deployment's own
// name, so it replaces the deployment's entry there: the tracker keys
// by namespace/name and a teardown will then delete the service only.
func (m *Manager) ExposeDeployment(ctx context.Context, name, namespace string, port, targetPort int32, serviceType string) (string, error) {
	service := build.ExposedService(name, namespace, port, targetPort, serviceType)

	created, err := m.cluster.Core().Services(namespace).Create(ctx, service, metav1.CreateOptions{})
	if err != nil {
		return fmt.Sprintf("Error exposing deployment: %v", err), nil
	}

	m.tracker.Record("Service", name, namespace)
	return fmt.Sprintf("Service created successfully:\n%s", formatService(created)), nil
}

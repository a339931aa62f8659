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
	"strconv"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/kubestrate/kubestrate/pkg/build"
)

// CreateIngressOptions hold the inputs of an ingress create.
type CreateIngressOptions struct {
	Name        string
	Namespace   string
	Rules       []build.IngressRule
	TLS         []build.IngressTLS
	Annotations map[string]string
}

// CreateIngress creates an ingress routing to backend services.
func (m *Manager) CreateIngress(ctx context.Context, opts CreateIngressOptions) (string, error) {
	if len(opts.Rules) == 0 {
		return "", fmt.Errorf("at least one ingress rule is required")
	}

	ingress := build.Ingress(opts.Name, opts.Namespace, opts.Rules, opts.TLS, opts.Annotations)
	created, err := m.cluster.Networking().Ingresses(opts.Namespace).Create(ctx, ingress, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("ingress", opts.Name).Msg("create failed")
		return fmt.Sprintf("Error creating ingress: %v", err), nil
	}

	m.tracker.Record("Ingress", opts.Name, opts.Namespace)
	return fmt.Sprintf("Ingress created successfully:\n%s", formatIngress(created)), nil
}

// ListIngresses renders the ingresses of a namespace as a table, or of
// all namespaces when the namespace is empty.
func (m *Manager) ListIngresses(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Networking().Ingresses(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting ingresses: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No ingresses found", nil
	}

	rows := make([][]string, 0, len(list.Items))
	for _, ing := range list.Items {
		hosts := "*"
		if len(ing.Spec.Rules) > 0 && ing.Spec.Rules[0].Host != "" {
			hosts = ing.Spec.Rules[0].Host
		}
		rows = append(rows, []string{
			ing.Namespace,
			ing.Name,
			hosts,
			strconv.Itoa(len(ing.Spec.Rules)),
			strconv.FormatBool(len(ing.Spec.TLS) > 0),
		})
	}
	return renderTable([]string{"Namespace", "Name", "Host", "Rules", "TLS"}, rows), nil
}

// DescribeIngress renders one ingress.
func (m *Manager) DescribeIngress(ctx context.Context, name, namespace string) (string, error) {
	ingress, err := m.cluster.Networking().Ingresses(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing ingress: %v", err), nil
	}
	return formatIngress(ingress), nil
}

// UpdateIngressOptions hold the patchable fields of an ingress. Absent
// fields are left untouched.
type UpdateIngressOptions struct {
	Name        string
	Namespace   string
	Rules       []build.IngressRule
	TLS         []build.IngressTLS
	Annotations map[string]string
}

// UpdateIngress patches an ingress's rules, TLS blocks or annotations.
func (m *Manager) UpdateIngress(ctx context.Context, opts UpdateIngressOptions) (string, error) {
	if opts.Rules == nil && opts.TLS == nil && opts.Annotations == nil {
		return "", fmt.Errorf("nothing to update, specify rules, tls or annotations")
	}

	// Rules and TLS are rebuilt through the resource builder so the
	// patch carries fully formed networking/v1 structures.
	rebuilt := build.Ingress(opts.Name, opts.Namespace, opts.Rules, opts.TLS, opts.Annotations)

	patch := map[string]interface{}{}
	spec := map[string]interface{}{}
	if opts.Rules != nil {
		spec["rules"] = rebuilt.Spec.Rules
	}
	if opts.TLS != nil {
		spec["tls"] = rebuilt.Spec.TLS
	}
	if len(spec) > 0 {
		patch["spec"] = spec
	}
	if opts.Annotations != nil {
		patch["metadata"] = map[string]interface{}{"annotations": opts.Annotations}
	}

	data, err := json.Marshal(patch)
	if err != nil {
		return "", err
	}

	updated, err := m.cluster.Networking().Ingresses(opts.Namespace).Patch(ctx, opts.Name,
		types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Sprintf("Error updating ingress: %v", err), nil
	}
	return fmt.Sprintf("Ingress updated successfully:\n%s", formatIngress(updated)), nil
}

// DeleteIngress deletes an ingress.
func (m *Manager) DeleteIngress(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Networking().Ingresses(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting ingress: %v", err), nil
	}
	return fmt.Sprintf("Ingress %s deleted successfully", name), nil
}

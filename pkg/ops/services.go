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
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/template"
)

// CreateService resolves a service template and creates the service.
func (m *Manager) CreateService(ctx context.Context, name, namespace, serviceType string, overrides *template.ServiceOverrides) (string, error) {
	cfg, err := template.ResolveService(serviceType, overrides)
	if err != nil {
		return "", err
	}

	service := build.Service(name, namespace, cfg)
	created, err := m.cluster.Core().Services(namespace).Create(ctx, service, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("service", name).Msg("create failed")
		return fmt.Sprintf("Error creating service: %v", err), nil
	}

	m.tracker.Record("Service", name, namespace)
	return fmt.Sprintf("Service created successfully:\n%s", formatService(created)), nil
}

// ListServices renders the services of a namespace, or of all namespaces
// when the namespace is empty.
func (m *Manager) ListServices(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Core().Services(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting services: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No services found", nil
	}

	var blocks []string
	for i := range list.Items {
		blocks = append(blocks, formatService(&list.Items[i]))
	}
	return formatBlocks(blocks), nil
}

// DescribeService renders one service.
func (m *Manager) DescribeService(ctx context.Context, name, namespace string) (string, error) {
	service, err := m.cluster.Core().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing service: %v", err), nil
	}
	return formatService(service), nil
}

// UpdateServiceOptions hold the patchable fields of a service. Absent
// fields are left untouched.
type UpdateServiceOptions struct {
	Name      string
	Namespace string
	Type      string
	Ports     []template.ServicePort
	Selector  map[string]string
}

// UpdateService patches a service's type, ports or selector.
func (m *Manager) UpdateService(ctx context.Context, opts UpdateServiceOptions) (string, error) {
	spec := map[string]interface{}{}
	if opts.Type != "" {
		spec["type"] = opts.Type
	}
	if opts.Ports != nil {
		spec["ports"] = opts.Ports
	}
	if opts.Selector != nil {
		spec["selector"] = opts.Selector
	}
	if len(spec) == 0 {
		return "", fmt.Errorf("nothing to update, specify a type, ports or selector")
	}

	data, err := json.Marshal(map[string]interface{}{"spec": spec})
	if err != nil {
		return "", err
	}

	updated, err := m.cluster.Core().Services(opts.Namespace).Patch(ctx, opts.Name,
		types.StrategicMergePatchType, data, metav1.PatchOptions{})
	if err != nil {
		return fmt.Sprintf("Error updating service: %v", err), nil
	}
	return fmt.Sprintf("Service updated successfully:\n%s", formatService(updated)), nil
}

// DeleteService deletes a service.
func (m *Manager) DeleteService(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Core().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting service: %v", err), nil
	}
	return fmt.Sprintf("Service %s deleted successfully", name), nil
}

// ServiceEndpoints renders the endpoint addresses backing a service.
func (m *Manager) ServiceEndpoints(ctx context.Context, name, namespace string) (string, error) {
	endpoints, err := m.cluster.Core().Endpoints(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error getting service endpoints: %v", err), nil
	}

	info := []string{fmt.Sprintf("Endpoints for service %s:", name)}
	for _, subset := range endpoints.Subsets {
		var addrs []string
		for _, addr := range subset.Addresses {
			addrs = append(addrs, addr.IP)
		}
		for _, port := range subset.Ports {
			info = append(info, fmt.Sprintf("  - %s port %d (%s)", strings.Join(addrs, ", "), port.Port, port.Protocol))
		}
	}
	if len(info) == 1 {
		info = append(info, "  (none)")
	}
	return strings.Join(info, "\n"), nil
}

// PortForwardService forwards a local port to a service through kubectl.
func (m *Manager) PortForwardService(ctx context.Context, name, namespace string, localPort, remotePort int) (string, error) {
	out, err := m.kubectl.PortForward(ctx, "service", name, namespace, localPort, remotePort)
	if err != nil {
		return fmt.Sprintf("Error forwarding port: %v", err), nil
	}
	return out, nil
}

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
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/template"
)

// CreatePod resolves a workload template and creates a bare pod from it.
func (m *Manager) CreatePod(ctx context.Context, name, namespace, templateID string, overrides *template.Overrides) (string, error) {
	cfg, err := template.Resolve(templateID, overrides)
	if err != nil {
		return "", err
	}

	pod, err := build.Pod(name, namespace, cfg)
	if err != nil {
		return "", err
	}

	created, err := m.cluster.Core().Pods(namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("pod", name).Msg("create failed")
		return fmt.Sprintf("Error creating pod: %v", err), nil
	}

	m.tracker.Record("Pod", name, namespace)
	return fmt.Sprintf("Pod created successfully:\n%s", formatPod(created)), nil
}

// ListPods renders the pods of a namespace, or of all namespaces when
// the namespace is empty.
func (m *Manager) ListPods(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Core().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting pods: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No pods found", nil
	}

	var blocks []string
	for i := range list.Items {
		blocks = append(blocks, formatPod(&list.Items[i]))
	}
	return formatBlocks(blocks), nil
}

// DescribePod renders one pod.
func (m *Manager) DescribePod(ctx context.Context, name, namespace string) (string, error) {
	pod, err := m.cluster.Core().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing pod: %v", err), nil
	}
	return formatPod(pod), nil
}

// DeletePod deletes a pod.
func (m *Manager) DeletePod(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Core().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting pod: %v", err), nil
	}
	return fmt.Sprintf("Pod %s deleted successfully", name), nil
}

// LogOptions narrow a log request to one container and a line budget.
type LogOptions struct {
	Container string
	TailLines *int64
}

// PodLogs returns the logs of a pod.
func (m *Manager) PodLogs(ctx context.Context, name, namespace string, opts LogOptions) (string, error) {
	logs, err := m.readPodLogs(ctx, name, namespace, opts)
	if err != nil {
		return fmt.Sprintf("Error getting pod logs: %v", err), nil
	}
	return fmt.Sprintf("Logs for pod %s:\n%s", name, logs), nil
}

func (m *Manager) readPodLogs(ctx context.Context, name, namespace string, opts LogOptions) (string, error) {
	req := m.cluster.Core().Pods(namespace).GetLogs(name, &corev1.PodLogOptions{
		Container: opts.Container,
		TailLines: opts.TailLines,
	})
	stream, err := req.Stream(ctx)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExecPod runs a command inside a pod through kubectl.
func (m *Manager) ExecPod(ctx context.Context, name, namespace, container string, command []string) (string, error) {
	if len(command) == 0 {
		return "", fmt.Errorf("no command given")
	}
	out, err := m.kubectl.Exec(ctx, name, namespace, container, command)
	if err != nil {
		return fmt.Sprintf("Error executing command in pod: %v", err), nil
	}
	return out, nil
}

// PodMetrics returns pod resource usage through kubectl top.
func (m *Manager) PodMetrics(ctx context.Context, namespace, labelSelector string) (string, error) {
	out, err := m.kubectl.TopPods(ctx, namespace, labelSelector)
	if err != nil {
		return fmt.Sprintf("Error getting pod metrics: %v", err), nil
	}
	return out, nil
}

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
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/template"
)

// CreateJobOptions hold the inputs of a job create.
type CreateJobOptions struct {
	Name      string
	Namespace string
	Template  string
	Overrides *template.Overrides
	Job       build.JobOptions
}

// CreateJob resolves a workload template and creates a run-to-completion
// job from it.
func (m *Manager) CreateJob(ctx context.Context, opts CreateJobOptions) (string, error) {
	cfg, err := template.Resolve(opts.Template, opts.Overrides)
	if err != nil {
		return "", err
	}

	job, err := build.Job(opts.Name, opts.Namespace, cfg, opts.Job)
	if err != nil {
		return "", err
	}

	created, err := m.cluster.Batch().Jobs(opts.Namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("job", opts.Name).Msg("create failed")
		return fmt.Sprintf("Error creating job: %v", err), nil
	}

	m.tracker.Record("Job", opts.Name, opts.Namespace)
	return fmt.Sprintf("Job created successfully:\n%s", formatJob(created)), nil
}

// ListJobs renders the jobs of a namespace as a table, or of all
// namespaces when the namespace is empty.
func (m *Manager) ListJobs(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Batch().Jobs(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting jobs: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No jobs found", nil
	}

	rows := make([][]string, 0, len(list.Items))
	for _, job := range list.Items {
		rows = append(rows, []string{
			job.Namespace,
			job.Name,
			fmt.Sprintf("%d/%d", job.Status.Succeeded, ptrInt32(job.Spec.Completions)),
			strconv.Itoa(int(job.Status.Active)),
			strconv.Itoa(int(job.Status.Failed)),
		})
	}
	return renderTable([]string{"Namespace", "Name", "Completions", "Active", "Failed"}, rows), nil
}

// DescribeJob renders one job.
func (m *Manager) DescribeJob(ctx context.Context, name, namespace string) (string, error) {
	job, err := m.cluster.Batch().Jobs(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing job: %v", err), nil
	}
	return formatJob(job), nil
}

// DeleteJob deletes a job.
func (m *Manager) DeleteJob(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Batch().Jobs(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting job: %v", err), nil
	}
	return fmt.Sprintf("Job %s deleted successfully", name), nil
}

// JobLogs collects the logs of every pod spawned by a job, located
// through the job-name label the controller stamps on them.
func (m *Manager) JobLogs(ctx context.Context, name, namespace string, opts LogOptions) (string, error) {
	pods, err := m.cluster.Core().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("job-name=%s", name),
	})
	if err != nil {
		return fmt.Sprintf("Error getting job logs: %v", err), nil
	}
	if len(pods.Items) == 0 {
		return fmt.Sprintf("No pods found for job %s", name), nil
	}

	var logs []string
	for _, pod := range pods.Items {
		podLogs, err := m.readPodLogs(ctx, pod.Name, namespace, opts)
		if err != nil {
			logs = append(logs, fmt.Sprintf("=== Logs from pod %s ===\nError: %v", pod.Name, err))
			continue
		}
		logs = append(logs, fmt.Sprintf("=== Logs from pod %s ===\n%s", pod.Name, podLogs))
	}
	return strings.Join(logs, "\n"), nil
}

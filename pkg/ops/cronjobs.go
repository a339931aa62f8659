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

// CreateCronJobOptions hold the inputs of a cronjob create.
type CreateCronJobOptions struct {
	Name      string
	Namespace string
	Schedule  string
	Template  string
	Overrides *template.Overrides
	Job       build.JobOptions
}

// CreateCronJob resolves a workload template and creates a scheduled
// job from it.
func (m *Manager) CreateCronJob(ctx context.Context, opts CreateCronJobOptions) (string, error) {
	if opts.Schedule == "" {
		return "", fmt.Errorf("a cron schedule is required")
	}

	cfg, err := template.Resolve(opts.Template, opts.Overrides)
	if err != nil {
		return "", err
	}

	cronjob, err := build.CronJob(opts.Name, opts.Namespace, opts.Schedule, cfg, opts.Job)
	if err != nil {
		return "", err
	}

	created, err := m.cluster.Batch().CronJobs(opts.Namespace).Create(ctx, cronjob, metav1.CreateOptions{})
	if err != nil {
		m.log.Error().Err(err).Str("cronjob", opts.Name).Msg("create failed")
		return fmt.Sprintf("Error creating cronjob: %v", err), nil
	}

	m.tracker.Record("CronJob", opts.Name, opts.Namespace)
	return fmt.Sprintf("CronJob created successfully:\n%s", formatCronJob(created)), nil
}

// ListCronJobs renders the cronjobs of a namespace as a table, or of all
// namespaces when the namespace is empty.
func (m *Manager) ListCronJobs(ctx context.Context, namespace, labelSelector string) (string, error) {
	list, err := m.cluster.Batch().CronJobs(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return fmt.Sprintf("Error getting cronjobs: %v", err), nil
	}
	if len(list.Items) == 0 {
		return "No cronjobs found", nil
	}

	rows := make([][]string, 0, len(list.Items))
	for _, cj := range list.Items {
		rows = append(rows, []string{
			cj.Namespace,
			cj.Name,
			cj.Spec.Schedule,
			strconv.FormatBool(ptrBool(cj.Spec.Suspend)),
			strconv.Itoa(len(cj.Status.Active)),
		})
	}
	return renderTable([]string{"Namespace", "Name", "Schedule", "Suspend", "Active"}, rows), nil
}

// DescribeCronJob renders one cronjob.
func (m *Manager) DescribeCronJob(ctx context.Context, name, namespace string) (string, error) {
	cronjob, err := m.cluster.Batch().CronJobs(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Sprintf("Error describing cronjob: %v", err), nil
	}
	return formatCronJob(cronjob), nil
}

// DeleteCronJob deletes a cronjob.
func (m *Manager) DeleteCronJob(ctx context.Context, name, namespace string) (string, error) {
	if err := m.cluster.Batch().CronJobs(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return fmt.Sprintf("Error deleting cronjob: %v", err), nil
	}
	return fmt.Sprintf("CronJob %s deleted successfully", name), nil
}

// CronJobLogs collects the logs of the pods spawned by a cronjob's jobs.
// Jobs are located by their owner reference to the cronjob.
func (m *Manager) CronJobLogs(ctx context.Context, name, namespace string, opts LogOptions) (string, error) {
	jobs, err := m.cluster.Batch().Jobs(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Sprintf("Error getting cronjob logs: %v", err), nil
	}

	var logs []string
	for _, job := range jobs.Items {
		if !ownedByCronJob(job.OwnerReferences, name) {
			continue
		}
		pods, err := m.cluster.Core().Pods(namespace).List(ctx, metav1.ListOptions{
			LabelSelector: fmt.Sprintf("job-name=%s", job.Name),
		})
		if err != nil {
			return fmt.Sprintf("Error getting cronjob logs: %v", err), nil
		}
		for _, pod := range pods.Items {
			podLogs, err := m.readPodLogs(ctx, pod.Name, namespace, opts)
			if err != nil {
				logs = append(logs, fmt.Sprintf("=== Logs from pod %s in job %s ===\nError: %v", pod.Name, job.Name, err))
				continue
			}
			logs = append(logs, fmt.Sprintf("=== Logs from pod %s in job %s ===\n%s", pod.Name, job.Name, podLogs))
		}
	}
	if len(logs) == 0 {
		return fmt.Sprintf("No jobs found for cronjob %s", name), nil
	}
	return strings.Join(logs, "\n"), nil
}

func ownedByCronJob(refs []metav1.OwnerReference, name string) bool {
	for _, ref := range refs {
		if ref.Kind == "CronJob" && ref.Name == name {
			return true
		}
	}
	return false
}

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
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
)

const blockSeparator = "--------------------------------------------------"

func formatDeployment(d *appsv1.Deployment) string {
	info := []string{
		fmt.Sprintf("Deployment: %s", d.Name),
		fmt.Sprintf("Namespace: %s", d.Namespace),
		fmt.Sprintf("Replicas: %d (Desired) / %d (Available)", ptrInt32(d.Spec.Replicas), d.Status.AvailableReplicas),
		fmt.Sprintf("Strategy: %s", d.Spec.Strategy.Type),
		"",
		"Containers:",
	}
	for _, c := range d.Spec.Template.Spec.Containers {
		info = append(info, formatContainer(c)...)
	}
	return strings.Join(info, "\n")
}

func formatPod(p *corev1.Pod) string {
	info := []string{
		fmt.Sprintf("Pod: %s", p.Name),
		fmt.Sprintf("Namespace: %s", p.Namespace),
		fmt.Sprintf("Status: %s", p.Status.Phase),
		fmt.Sprintf("Node: %s", p.Status.HostIP),
		fmt.Sprintf("IP: %s", p.Status.PodIP),
		"",
		"Containers:",
	}
	for _, c := range p.Spec.Containers {
		info = append(info, formatContainer(c)...)
	}
	return strings.Join(info, "\n")
}

func formatContainer(c corev1.Container) []string {
	info := []string{
		fmt.Sprintf("  - %s", c.Name),
		fmt.Sprintf("    Image: %s", c.Image),
	}
	if len(c.Ports) > 0 {
		info = append(info, "    Ports:")
		for _, p := range c.Ports {
			info = append(info, fmt.Sprintf("      - %d/%s", p.ContainerPort, p.Protocol))
		}
	}
	if len(c.Env) > 0 {
		info = append(info, "    Environment:")
		for _, e := range c.Env {
			info = append(info, fmt.Sprintf("      - %s=%s", e.Name, e.Value))
		}
	}
	return info
}

func formatService(s *corev1.Service) string {
	info := []string{
		fmt.Sprintf("Service: %s", s.Name),
		fmt.Sprintf("Namespace: %s", s.Namespace),
		fmt.Sprintf("Type: %s", s.Spec.Type),
		"Ports:",
	}
	for _, p := range s.Spec.Ports {
		info = append(info, fmt.Sprintf("  - %d -> %s", p.Port, p.TargetPort.String()))
	}
	return strings.Join(info, "\n")
}

func formatJob(j *batchv1.Job) string {
	info := []string{
		fmt.Sprintf("Job: %s", j.Name),
		fmt.Sprintf("Namespace: %s", j.Namespace),
		fmt.Sprintf("Completions: %d", ptrInt32(j.Spec.Completions)),
		fmt.Sprintf("Parallelism: %d", ptrInt32(j.Spec.Parallelism)),
		fmt.Sprintf("Status: %d active / %d succeeded / %d failed",
			j.Status.Active, j.Status.Succeeded, j.Status.Failed),
	}
	for _, c := range j.Spec.Template.Spec.Containers {
		info = append(info, fmt.Sprintf("Image: %s", c.Image))
	}
	return strings.Join(info, "\n")
}

func formatCronJob(cj *batchv1.CronJob) string {
	info := []string{
		fmt.Sprintf("CronJob: %s", cj.Name),
		fmt.Sprintf("Namespace: %s", cj.Namespace),
		fmt.Sprintf("Schedule: %s", cj.Spec.Schedule),
		fmt.Sprintf("Suspend: %t", ptrBool(cj.Spec.Suspend)),
		fmt.Sprintf("Active: %d", len(cj.Status.Active)),
	}
	for _, c := range cj.Spec.JobTemplate.Spec.Template.Spec.Containers {
		info = append(info, fmt.Sprintf("Image: %s", c.Image))
	}
	return strings.Join(info, "\n")
}

func formatIngress(ing *networkingv1.Ingress) string {
	info := []string{
		fmt.Sprintf("Ingress: %s", ing.Name),
		fmt.Sprintf("Namespace: %s", ing.Namespace),
		"Rules:",
	}
	for _, rule := range ing.Spec.Rules {
		host := rule.Host
		if host == "" {
			host = "*"
		}
		info = append(info, fmt.Sprintf("  - Host: %s", host))
		if rule.HTTP == nil {
			continue
		}
		for _, path := range rule.HTTP.Paths {
			backend := path.Backend.Service
			info = append(info, fmt.Sprintf("    %s -> %s:%d", path.Path, backend.Name, backend.Port.Number))
		}
	}
	if len(ing.Spec.TLS) > 0 {
		info = append(info, "TLS:")
		for _, tls := range ing.Spec.TLS {
			info = append(info, fmt.Sprintf("  - %s (%s)", strings.Join(tls.Hosts, ", "), tls.SecretName))
		}
	}
	return strings.Join(info, "\n")
}

func formatBlocks(blocks []string) string {
	var out []string
	for _, b := range blocks {
		out = append(out, b, blockSeparator)
	}
	return strings.Join(out, "\n")
}

// renderTable renders a header and rows as an aligned plain table.
func renderTable(header []string, rows [][]string) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return strings.TrimRight(sb.String(), "\n")
}

func ptrInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}

func ptrBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}

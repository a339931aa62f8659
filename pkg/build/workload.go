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

// Package build turns canonical configurations into typed Kubernetes
// resource specifications. Builders are pure and deterministic, they
// perform no I/O and no cross-field validation: a specification the
// cluster considers inconsistent is rejected remotely, not here.
package build

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubestrate/kubestrate/pkg/template"
)

const (
	// ManagedByLabel marks every resource built by this layer.
	ManagedByLabel = "app.kubernetes.io/managed-by"
	// ManagedByValue is the provenance marker value.
	ManagedByValue = "kubestrate"
	// AppLabel carries the resource name as app identity.
	AppLabel = "app"
)

// Labels returns the two provenance labels stamped on every built resource.
func Labels(name string) map[string]string {
	return map[string]string{
		ManagedByLabel: ManagedByValue,
		AppLabel:       name,
	}
}

// JobOptions holds the run-to-completion knobs shared by Job and CronJob.
type JobOptions struct {
	Completions  int32
	Parallelism  int32
	BackoffLimit int32
}

// DefaultJobOptions mirrors the batch API server defaults.
func DefaultJobOptions() JobOptions {
	return JobOptions{Completions: 1, Parallelism: 1, BackoffLimit: 6}
}

// Deployment builds a Deployment whose pod template runs a single container
// described by the canonical configuration.
func Deployment(name, namespace string, cfg template.Config, replicas int32) (*appsv1.Deployment, error) {
	spec, err := podSpec(name, cfg, corev1.RestartPolicyAlways)
	if err != nil {
		return nil, err
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(name),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{AppLabel: name},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{AppLabel: name},
				},
				Spec: spec,
			},
		},
	}, nil
}

// Pod builds a standalone Pod from the canonical configuration.
func Pod(name, namespace string, cfg template.Config) (*corev1.Pod, error) {
	spec, err := podSpec(name, cfg, corev1.RestartPolicyAlways)
	if err != nil {
		return nil, err
	}

	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(name),
		},
		Spec: spec,
	}, nil
}

// Job builds a run-to-completion Job from the canonical configuration.
func Job(name, namespace string, cfg template.Config, opts JobOptions) (*batchv1.Job, error) {
	spec, err := jobSpec(name, cfg, opts)
	if err != nil {
		return nil, err
	}

	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "Job",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(name),
		},
		Spec: *spec,
	}, nil
}

// CronJob builds a CronJob that runs the configured container on the
// given cron schedule.
func CronJob(name, namespace, schedule string, cfg template.Config, opts JobOptions) (*batchv1.CronJob, error) {
	spec, err := jobSpec(name, cfg, opts)
	if err != nil {
		return nil, err
	}

	return &batchv1.CronJob{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "CronJob",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    Labels(name),
		},
		Spec: batchv1.CronJobSpec{
			Schedule: schedule,
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: *spec,
			},
		},
	}, nil
}

func jobSpec(name string, cfg template.Config, opts JobOptions) (*batchv1.JobSpec, error) {
	spec, err := podSpec(name, cfg, corev1.RestartPolicyOnFailure)
	if err != nil {
		return nil, err
	}

	return &batchv1.JobSpec{
		Completions:  &opts.Completions,
		Parallelism:  &opts.Parallelism,
		BackoffLimit: &opts.BackoffLimit,
		Template: corev1.PodTemplateSpec{
			ObjectMeta: metav1.ObjectMeta{
				Labels: map[string]string{AppLabel: name},
			},
			Spec: spec,
		},
	}, nil
}

// podSpec builds a pod spec whose sole container is the one described by
// the canonical configuration. The restart policy falls back to the
// kind-appropriate default when the configuration does not set one.
func podSpec(name string, cfg template.Config, defaultRestart corev1.RestartPolicy) (corev1.PodSpec, error) {
	c, err := container(name, cfg)
	if err != nil {
		return corev1.PodSpec{}, err
	}

	restart := defaultRestart
	if cfg.RestartPolicy != "" {
		restart = corev1.RestartPolicy(cfg.RestartPolicy)
	}

	return corev1.PodSpec{
		Containers:    []corev1.Container{c},
		RestartPolicy: restart,
	}, nil
}

func container(name string, cfg template.Config) (corev1.Container, error) {
	c := corev1.Container{
		Name:    name,
		Image:   cfg.Image,
		Command: cfg.Command,
		Args:    cfg.Args,
	}

	for _, p := range cfg.Ports {
		protocol := corev1.ProtocolTCP
		if p.Protocol != "" {
			protocol = corev1.Protocol(p.Protocol)
		}
		c.Ports = append(c.Ports, corev1.ContainerPort{
			ContainerPort: p.ContainerPort,
			Protocol:      protocol,
			Name:          p.Name,
		})
	}

	for _, e := range cfg.Env {
		c.Env = append(c.Env, corev1.EnvVar{
			Name:      e.Name,
			Value:     e.Value,
			ValueFrom: e.ValueFrom,
		})
	}

	// the resources block is omitted entirely when the configuration
	// carries none, zero-valued requests are never fabricated
	if cfg.Resources != nil {
		requests, err := resourceList(cfg.Resources.Requests)
		if err != nil {
			return corev1.Container{}, err
		}
		limits, err := resourceList(cfg.Resources.Limits)
		if err != nil {
			return corev1.Container{}, err
		}
		c.Resources = corev1.ResourceRequirements{
			Requests: requests,
			Limits:   limits,
		}
	}

	return c, nil
}

func resourceList(in map[string]string) (corev1.ResourceList, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := corev1.ResourceList{}
	for name, value := range in {
		q, err := resource.ParseQuantity(value)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q for %s: %w", value, name, err)
		}
		out[corev1.ResourceName(name)] = q
	}
	return out, nil
}

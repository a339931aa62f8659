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

package build

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	apiequality "k8s.io/apimachinery/pkg/api/equality"

	"github.com/kubestrate/kubestrate/pkg/template"
)

func TestDeployment(t *testing.T) {
	cfg, err := template.Resolve(template.WebServer, nil)
	if err != nil {
		t.Fatal(err)
	}

	deployment, err := Deployment("site", "default", cfg, 2)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("stamps provenance labels", func(t *testing.T) {
		want := map[string]string{
			ManagedByLabel: ManagedByValue,
			AppLabel:       "site",
		}
		if diff := cmp.Diff(want, deployment.Labels); diff != "" {
			t.Errorf("labels mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("builds a single container from the config", func(t *testing.T) {
		containers := deployment.Spec.Template.Spec.Containers
		if len(containers) != 1 {
			t.Fatalf("expected one container, got %d", len(containers))
		}
		c := containers[0]
		if c.Name != "site" {
			t.Errorf("container name: %s", c.Name)
		}
		if c.Image != cfg.Image {
			t.Errorf("container image: %s", c.Image)
		}
		if len(c.Ports) != 1 || c.Ports[0].ContainerPort != 80 || c.Ports[0].Protocol != corev1.ProtocolTCP {
			t.Errorf("unexpected ports: %+v", c.Ports)
		}
	})

	t.Run("selector matches the pod template", func(t *testing.T) {
		if diff := cmp.Diff(deployment.Spec.Selector.MatchLabels, deployment.Spec.Template.Labels); diff != "" {
			t.Errorf("selector mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		again, err := Deployment("site", "default", cfg, 2)
		if err != nil {
			t.Fatal(err)
		}
		if !apiequality.Semantic.DeepEqual(deployment, again) {
			t.Error("two builds with identical inputs differ")
		}
	})
}

func TestContainerDefaults(t *testing.T) {
	t.Run("port protocol defaults to TCP, name stays absent", func(t *testing.T) {
		pod, err := Pod("p", "default", template.Config{
			Image: "busybox",
			Ports: []template.Port{{ContainerPort: 9000}},
		})
		if err != nil {
			t.Fatal(err)
		}
		port := pod.Spec.Containers[0].Ports[0]
		if port.Protocol != corev1.ProtocolTCP {
			t.Errorf("protocol: %s", port.Protocol)
		}
		if port.Name != "" {
			t.Errorf("port name defaulted to %q", port.Name)
		}
	})

	t.Run("resources block omitted when config has none", func(t *testing.T) {
		pod, err := Pod("p", "default", template.Config{Image: "busybox"})
		if err != nil {
			t.Fatal(err)
		}
		resources := pod.Spec.Containers[0].Resources
		if resources.Requests != nil || resources.Limits != nil {
			t.Errorf("unexpected resources: %+v", resources)
		}
	})

	t.Run("rejects malformed quantities", func(t *testing.T) {
		_, err := Pod("p", "default", template.Config{
			Image: "busybox",
			Resources: &template.Resources{
				Requests: map[string]string{"cpu": "lots"},
			},
		})
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestJob(t *testing.T) {
	cfg := template.Config{
		Image:   "busybox",
		Command: []string{"sh", "-c", "echo done"},
	}
	opts := JobOptions{Completions: 3, Parallelism: 2, BackoffLimit: 1}

	job, err := Job("backup", "default", cfg, opts)
	if err != nil {
		t.Fatal(err)
	}

	if *job.Spec.Completions != 3 || *job.Spec.Parallelism != 2 || *job.Spec.BackoffLimit != 1 {
		t.Errorf("unexpected job knobs: %+v", job.Spec)
	}
	if job.Spec.Template.Labels[AppLabel] != "backup" {
		t.Errorf("pod template labels: %v", job.Spec.Template.Labels)
	}
	containers := job.Spec.Template.Spec.Containers
	if len(containers) != 1 || containers[0].Image != "busybox" {
		t.Errorf("pod template lost the configured container: %+v", containers)
	}
}

func TestRestartPolicyDefaults(t *testing.T) {
	cfg := template.Config{Image: "busybox"}

	pod, err := Pod("p", "default", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if pod.Spec.RestartPolicy != corev1.RestartPolicyAlways {
		t.Errorf("pod restart policy: %s", pod.Spec.RestartPolicy)
	}

	job, err := Job("j", "default", cfg, DefaultJobOptions())
	if err != nil {
		t.Fatal(err)
	}
	if job.Spec.Template.Spec.RestartPolicy != corev1.RestartPolicyOnFailure {
		t.Errorf("job restart policy: %s", job.Spec.Template.Spec.RestartPolicy)
	}

	cronJob, err := CronJob("c", "default", "*/5 * * * *", cfg, DefaultJobOptions())
	if err != nil {
		t.Fatal(err)
	}
	if cronJob.Spec.JobTemplate.Spec.Template.Spec.RestartPolicy != corev1.RestartPolicyOnFailure {
		t.Errorf("cronjob restart policy: %s", cronJob.Spec.JobTemplate.Spec.Template.Spec.RestartPolicy)
	}

	cfg.RestartPolicy = "Never"
	job, err = Job("j", "default", cfg, DefaultJobOptions())
	if err != nil {
		t.Fatal(err)
	}
	if job.Spec.Template.Spec.RestartPolicy != corev1.RestartPolicyNever {
		t.Errorf("explicit restart policy ignored: %s", job.Spec.Template.Spec.RestartPolicy)
	}
}

func TestService(t *testing.T) {
	cfg, err := template.ResolveService(template.ClusterIP, nil)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("selector defaults to the app identity", func(t *testing.T) {
		svc := Service("site", "default", cfg)
		want := map[string]string{AppLabel: "site"}
		if diff := cmp.Diff(want, svc.Spec.Selector); diff != "" {
			t.Errorf("selector mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit selector wins", func(t *testing.T) {
		withSelector := cfg
		withSelector.Selector = map[string]string{"tier": "backend"}
		svc := Service("site", "default", withSelector)
		if svc.Spec.Selector["tier"] != "backend" {
			t.Errorf("selector: %+v", svc.Spec.Selector)
		}
	})

	t.Run("exposed service maps target port", func(t *testing.T) {
		svc := ExposedService("site", "default", 80, 0, template.ClusterIP)
		if got := svc.Spec.Ports[0].TargetPort.IntValue(); got != 80 {
			t.Errorf("target port: %d", got)
		}

		svc = ExposedService("site", "default", 80, 8080, template.LoadBalancer)
		if got := svc.Spec.Ports[0].TargetPort.IntValue(); got != 8080 {
			t.Errorf("target port: %d", got)
		}
		if svc.Spec.Type != corev1.ServiceTypeLoadBalancer {
			t.Errorf("service type: %s", svc.Spec.Type)
		}
	})
}

func TestIngress(t *testing.T) {
	ing := Ingress("site", "default", []IngressRule{
		{
			Host: "example.com",
			Paths: []IngressPath{
				{ServiceName: "site", ServicePort: 80},
			},
		},
	}, []IngressTLS{
		{Hosts: []string{"example.com"}, SecretName: "site-tls"},
	}, map[string]string{"nginx.ingress.kubernetes.io/rewrite-target": "/"})

	path := ing.Spec.Rules[0].HTTP.Paths[0]
	if path.Path != "/" {
		t.Errorf("path not defaulted: %s", path.Path)
	}
	if *path.PathType != "Prefix" {
		t.Errorf("path type not defaulted: %s", *path.PathType)
	}
	if path.Backend.Service.Name != "site" || path.Backend.Service.Port.Number != 80 {
		t.Errorf("backend mismatch: %+v", path.Backend)
	}
	if ing.Spec.TLS[0].SecretName != "site-tls" {
		t.Errorf("tls mismatch: %+v", ing.Spec.TLS)
	}
}

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
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/cluster"
	"github.com/kubestrate/kubestrate/pkg/invoke"
	"github.com/kubestrate/kubestrate/pkg/registry"
	"github.com/kubestrate/kubestrate/pkg/template"
)

type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.output, f.err
}

func newTestManager(runner *fakeRunner, objects ...runtime.Object) (*Manager, *fake.Clientset) {
	clientset := fake.NewSimpleClientset(objects...)
	m := NewManager(cluster.NewWithInterface(clientset),
		invoke.NewKubectl(runner), invoke.NewHelm(runner), zerolog.Nop())
	return m, clientset
}

func TestCreateDeployment(t *testing.T) {
	g := NewWithT(t)
	m, clientset := newTestManager(&fakeRunner{})

	result, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name:      "site",
		Namespace: "default",
		Template:  template.WebServer,
		Replicas:  2,
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Deployment created successfully:"))
	g.Expect(result).To(ContainSubstring("Deployment: site"))
	g.Expect(result).To(ContainSubstring("Image: nginx:latest"))

	created, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "site", metav1.GetOptions{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(created.Labels).To(HaveKeyWithValue(build.ManagedByLabel, build.ManagedByValue))

	g.Expect(m.Tracker().List()).To(ConsistOf(registry.Entry{
		Kind: "Deployment", Name: "site", Namespace: "default",
	}))
}

func TestCreateDeploymentUnknownTemplate(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name: "site", Namespace: "default", Template: "no-such-template",
	})
	var unknown *template.UnknownTemplateError
	g.Expect(errors.As(err, &unknown)).To(BeTrue())
	g.Expect(m.Tracker().Len()).To(BeZero())
}

func TestListDeploymentsEmpty(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	result, err := m.ListDeployments(context.Background(), "default", "")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal("No deployments found"))
}

func TestScaleDeployment(t *testing.T) {
	g := NewWithT(t)
	m, clientset := newTestManager(&fakeRunner{})

	_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name: "site", Namespace: "default", Template: template.WebServer,
	})
	g.Expect(err).NotTo(HaveOccurred())

	result, err := m.ScaleDeployment(context.Background(), "site", "default", 5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal("Deployment site scaled to 5 replicas"))

	scaled, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "site", metav1.GetOptions{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(*scaled.Spec.Replicas).To(Equal(int32(5)))
}

func TestRolloutDeployment(t *testing.T) {
	g := NewWithT(t)

	t.Run("undo shells out instead of restarting", func(t *testing.T) {
		runner := &fakeRunner{output: "deployment.apps/site rolled back"}
		m, _ := newTestManager(runner)

		result, err := m.RolloutDeployment(context.Background(), "site", "default", "undo")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result).To(Equal("deployment.apps/site rolled back"))
		g.Expect(runner.calls).To(HaveLen(1))
		g.Expect(runner.calls[0]).To(Equal([]string{"rollout", "undo", "deployment/site", "-n", "default"}))
	})

	t.Run("restart stamps the restart annotation", func(t *testing.T) {
		runner := &fakeRunner{}
		m, clientset := newTestManager(runner)

		_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
			Name: "site", Namespace: "default", Template: template.WebServer,
		})
		g.Expect(err).NotTo(HaveOccurred())

		result, err := m.RolloutDeployment(context.Background(), "site", "default", "restart")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(result).To(Equal("Deployment site restarted"))
		g.Expect(runner.calls).To(BeEmpty())

		restarted, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "site", metav1.GetOptions{})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(restarted.Spec.Template.Annotations).To(HaveKey("kubectl.kubernetes.io/restartedAt"))
	})

	t.Run("rejects unknown actions", func(t *testing.T) {
		m, _ := newTestManager(&fakeRunner{})
		_, err := m.RolloutDeployment(context.Background(), "site", "default", "pause")
		g.Expect(err).To(HaveOccurred())
	})
}

func TestUpdateDeployment(t *testing.T) {
	g := NewWithT(t)
	m, clientset := newTestManager(&fakeRunner{})

	_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name: "site", Namespace: "default", Template: template.WebServer,
	})
	g.Expect(err).NotTo(HaveOccurred())

	result, err := m.UpdateDeployment(context.Background(), UpdateDeploymentOptions{
		Name: "site", Namespace: "default", Image: "nginx:1.27",
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Deployment updated successfully:"))

	updated, err := clientset.AppsV1().Deployments("default").Get(context.Background(), "site", metav1.GetOptions{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(updated.Spec.Template.Spec.Containers[0].Image).To(Equal("nginx:1.27"))

	_, err = m.UpdateDeployment(context.Background(), UpdateDeploymentOptions{
		Name: "site", Namespace: "default",
	})
	g.Expect(err).To(HaveOccurred())
}

func TestExposeDeployment(t *testing.T) {
	g := NewWithT(t)
	m, clientset := newTestManager(&fakeRunner{})

	_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name: "site", Namespace: "default", Template: template.WebServer,
	})
	g.Expect(err).NotTo(HaveOccurred())

	result, err := m.ExposeDeployment(context.Background(), "site", "default", 80, 8080, "NodePort")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Service created successfully:"))

	service, err := clientset.CoreV1().Services("default").Get(context.Background(), "site", metav1.GetOptions{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(service.Spec.Selector).To(HaveKeyWithValue("app", "site"))
	g.Expect(service.Spec.Type).To(Equal(corev1.ServiceTypeNodePort))

	// the service entry shares the deployment's namespace/name key and
	// replaces it in the tracker
	g.Expect(m.Tracker().List()).To(ConsistOf(registry.Entry{
		Kind: "Service", Name: "site", Namespace: "default",
	}))
}

func TestDeleteServiceNotFound(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	result, err := m.DeleteService(context.Background(), "ghost", "default")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Error deleting service:"))
}

func TestCreateJobAndLogs(t *testing.T) {
	g := NewWithT(t)

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "backup-x7k",
			Namespace: "default",
			Labels:    map[string]string{"job-name": "backup"},
		},
	}
	m, _ := newTestManager(&fakeRunner{}, pod)

	result, err := m.CreateJob(context.Background(), CreateJobOptions{
		Name:      "backup",
		Namespace: "default",
		Template:  template.Python,
		Job:       build.DefaultJobOptions(),
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Job created successfully:"))
	g.Expect(m.Tracker().List()).To(ConsistOf(registry.Entry{
		Kind: "Job", Name: "backup", Namespace: "default",
	}))

	logs, err := m.JobLogs(context.Background(), "backup", "default", LogOptions{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(logs).To(ContainSubstring("=== Logs from pod backup-x7k ==="))
}

func TestCreateCronJobRequiresSchedule(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	_, err := m.CreateCronJob(context.Background(), CreateCronJobOptions{
		Name: "nightly", Namespace: "default", Template: template.Python,
	})
	g.Expect(err).To(HaveOccurred())

	result, err := m.CreateCronJob(context.Background(), CreateCronJobOptions{
		Name:      "nightly",
		Namespace: "default",
		Schedule:  "0 2 * * *",
		Template:  template.Python,
		Job:       build.DefaultJobOptions(),
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("CronJob created successfully:"))
	g.Expect(result).To(ContainSubstring("Schedule: 0 2 * * *"))
}

func TestCreateIngress(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	_, err := m.CreateIngress(context.Background(), CreateIngressOptions{
		Name: "edge", Namespace: "default",
	})
	g.Expect(err).To(HaveOccurred())

	result, err := m.CreateIngress(context.Background(), CreateIngressOptions{
		Name:      "edge",
		Namespace: "default",
		Rules: []build.IngressRule{{
			Host: "example.com",
			Paths: []build.IngressPath{{
				Path: "/", ServiceName: "site", ServicePort: 80,
			}},
		}},
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Ingress created successfully:"))
	g.Expect(result).To(ContainSubstring("Host: example.com"))
	g.Expect(m.Tracker().List()).To(ConsistOf(registry.Entry{
		Kind: "Ingress", Name: "edge", Namespace: "default",
	}))
}

func TestApply(t *testing.T) {
	g := NewWithT(t)
	m, _ := newTestManager(&fakeRunner{})

	manifest := `
apiVersion: v1
kind: ConfigMap
metadata:
  name: app-settings
data:
  mode: production
`
	result, err := m.Apply(context.Background(), manifest, "default", false)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal("ConfigMap app-settings created successfully"))
}

func TestTeardown(t *testing.T) {
	g := NewWithT(t)
	m, clientset := newTestManager(&fakeRunner{})

	_, err := m.CreateDeployment(context.Background(), CreateDeploymentOptions{
		Name: "site", Namespace: "default", Template: template.WebServer,
	})
	g.Expect(err).NotTo(HaveOccurred())
	_, err = m.CreateService(context.Background(), "site-lb", "default", "ClusterIP", nil)
	g.Expect(err).NotTo(HaveOccurred())

	listing, err := m.Tracked()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(listing).To(ContainSubstring("site"))

	result, err := m.Teardown(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(ContainSubstring("Deleted Deployment/default/site"))
	g.Expect(result).To(ContainSubstring("Deleted Service/default/site-lb"))
	g.Expect(m.Tracker().Len()).To(BeZero())

	_, err = clientset.AppsV1().Deployments("default").Get(context.Background(), "site", metav1.GetOptions{})
	g.Expect(err).To(HaveOccurred())

	result, err = m.Teardown(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal("No tracked resources"))
}

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

package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	t.Run("returns base config unchanged without overrides", func(t *testing.T) {
		for _, id := range Workloads() {
			cfg, err := Resolve(id, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(workloadCatalog[id], cfg); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", id, diff)
			}
		}
	})

	t.Run("web-server base has a single http port", func(t *testing.T) {
		cfg, err := Resolve(WebServer, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.Ports) != 1 {
			t.Fatalf("expected one port, got %d", len(cfg.Ports))
		}
		if cfg.Ports[0].ContainerPort != 80 || cfg.Ports[0].Protocol != "TCP" {
			t.Errorf("unexpected port %+v", cfg.Ports[0])
		}
	})

	t.Run("resolved configs do not share state with the catalog", func(t *testing.T) {
		cfg, err := Resolve(WebServer, nil)
		if err != nil {
			t.Fatal(err)
		}
		cfg.Ports[0].ContainerPort = 8080
		cfg.Resources.Limits["cpu"] = "9000m"

		again, err := Resolve(WebServer, nil)
		if err != nil {
			t.Fatal(err)
		}
		if again.Ports[0].ContainerPort != 80 {
			t.Error("catalog port mutated through a resolved config")
		}
		if again.Resources.Limits["cpu"] != "500m" {
			t.Error("catalog resources mutated through a resolved config")
		}
	})

	t.Run("rejects unknown identifiers with the valid set", func(t *testing.T) {
		_, err := Resolve("fortran", nil)
		if err == nil {
			t.Fatal("expected an error")
		}

		var unknownErr *UnknownTemplateError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("expected UnknownTemplateError, got %T", err)
		}
		for _, id := range Workloads() {
			if !strings.Contains(err.Error(), id) {
				t.Errorf("error message does not list %q: %s", id, err)
			}
		}
	})
}

func TestMerge(t *testing.T) {
	image := "registry.local/site:v2"
	restart := "Never"

	t.Run("present fields replace, absent fields inherit", func(t *testing.T) {
		cfg, err := Resolve(WebServer, &Overrides{
			Image: &image,
			Ports: []Port{
				{ContainerPort: 8080, Protocol: "TCP"},
				{ContainerPort: 8443, Protocol: "TCP"},
			},
			RestartPolicy: &restart,
		})
		if err != nil {
			t.Fatal(err)
		}

		if cfg.Image != image {
			t.Errorf("image not replaced: %s", cfg.Image)
		}
		if cfg.RestartPolicy != restart {
			t.Errorf("restart policy not replaced: %s", cfg.RestartPolicy)
		}

		// the supplied ports list fully replaces the template's list
		want := []Port{
			{ContainerPort: 8080, Protocol: "TCP"},
			{ContainerPort: 8443, Protocol: "TCP"},
		}
		if diff := cmp.Diff(want, cfg.Ports); diff != "" {
			t.Errorf("ports mismatch (-want +got):\n%s", diff)
		}

		// inherited from the base
		if diff := cmp.Diff(workloadCatalog[WebServer].Resources, cfg.Resources); diff != "" {
			t.Errorf("resources mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty non-nil list clears the base list", func(t *testing.T) {
		cfg, err := Resolve(WebServer, &Overrides{Ports: []Port{}})
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.Ports) != 0 {
			t.Errorf("expected no ports, got %v", cfg.Ports)
		}
	})

	t.Run("merge does not touch the catalog", func(t *testing.T) {
		_, err := Resolve(Postgres, &Overrides{
			Env: []EnvVar{{Name: "POSTGRES_PASSWORD", Value: "hunter2"}},
		})
		if err != nil {
			t.Fatal(err)
		}

		base, err := Resolve(Postgres, nil)
		if err != nil {
			t.Fatal(err)
		}
		if base.Env[0].Value != "postgres" {
			t.Errorf("catalog env mutated: %+v", base.Env)
		}
	})
}

func TestResolveService(t *testing.T) {
	t.Run("returns base config per type", func(t *testing.T) {
		for _, id := range ServiceTypes() {
			cfg, err := ResolveService(id, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(serviceCatalog[id], cfg); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", id, diff)
			}
		}
	})

	t.Run("rejects unknown service types", func(t *testing.T) {
		_, err := ResolveService("Headless", nil)
		var unknownErr *UnknownTemplateError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("expected UnknownTemplateError, got %v", err)
		}
	})

	t.Run("merges overrides wholesale", func(t *testing.T) {
		policy := "Local"
		cfg, err := ResolveService(LoadBalancer, &ServiceOverrides{
			Ports:                 []ServicePort{{Port: 443, TargetPort: 8443, Protocol: "TCP", Name: "https"}},
			Selector:              map[string]string{"app": "site"},
			ExternalTrafficPolicy: &policy,
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(cfg.Ports) != 1 || cfg.Ports[0].Port != 443 {
			t.Errorf("ports not replaced: %+v", cfg.Ports)
		}
		if cfg.ExternalTrafficPolicy != "Local" {
			t.Errorf("policy not replaced: %s", cfg.ExternalTrafficPolicy)
		}
		if cfg.SessionAffinity != "None" {
			t.Errorf("session affinity not inherited: %s", cfg.SessionAffinity)
		}
	})
}

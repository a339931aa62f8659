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

package main

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/kubestrate/kubestrate/pkg/build"
)

func TestCommandWiring(t *testing.T) {
	g := NewWithT(t)

	commands := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		commands[cmd.Name()] = true
	}

	for _, name := range []string{
		"create", "get", "describe", "delete", "update", "scale", "rollout",
		"logs", "exec", "expose", "port-forward", "apply", "teardown",
		"node", "cluster-info", "top", "helm", "config", "check",
	} {
		g.Expect(commands).To(HaveKey(name), "missing command %s", name)
	}
}

func TestApplyRequiresFilename(t *testing.T) {
	g := NewWithT(t)

	applyArgs.filename = ""
	err := runApplyCmd(applyCmd, nil)
	g.Expect(err).To(MatchError(ContainSubstring("-f is required")))
}

func TestIngressRules(t *testing.T) {
	g := NewWithT(t)

	t.Run("path and host backends", func(t *testing.T) {
		createArgs.hosts = []string{"example.com"}
		createArgs.services = []string{"/api=backend:8080", "web:80"}

		rules, err := ingressRules()
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(rules).To(HaveLen(1))
		g.Expect(rules[0].Host).To(Equal("example.com"))
		g.Expect(rules[0].Paths).To(Equal([]build.IngressPath{
			{Path: "/api", ServiceName: "backend", ServicePort: 8080},
			{Path: "", ServiceName: "web", ServicePort: 80},
		}))
	})

	t.Run("backend is required", func(t *testing.T) {
		createArgs.hosts = nil
		createArgs.services = nil

		_, err := ingressRules()
		g.Expect(err).To(HaveOccurred())
	})

	t.Run("malformed backend", func(t *testing.T) {
		createArgs.services = []string{"backend"}

		_, err := ingressRules()
		g.Expect(err).To(MatchError(ContainSubstring("expected name:port")))
	})
}

func TestWorkloadOverrides(t *testing.T) {
	g := NewWithT(t)

	t.Run("no flags means no overrides", func(t *testing.T) {
		createArgs = createFlags{}
		overrides, err := workloadOverrides()
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(overrides).To(BeNil())
	})

	t.Run("collects the supplied flags", func(t *testing.T) {
		createArgs = createFlags{
			image: "redis:7",
			ports: []int32{6379},
			env:   []string{"MODE=cache"},
		}
		overrides, err := workloadOverrides()
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(*overrides.Image).To(Equal("redis:7"))
		g.Expect(overrides.Ports).To(HaveLen(1))
		g.Expect(overrides.Env[0].Name).To(Equal("MODE"))
		g.Expect(overrides.Env[0].Value).To(Equal("cache"))
	})

	t.Run("rejects malformed env", func(t *testing.T) {
		createArgs = createFlags{env: []string{"MODE"}}
		_, err := workloadOverrides()
		g.Expect(err).To(MatchError(ContainSubstring("expected key=value")))
	})
}

func TestParsePortMapping(t *testing.T) {
	g := NewWithT(t)

	port, target, err := parsePortMapping("80:8080")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(port).To(Equal(int32(80)))
	g.Expect(target).To(Equal(int32(8080)))

	port, target, err = parsePortMapping("5432")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(port).To(Equal(int32(5432)))
	g.Expect(target).To(Equal(int32(5432)))

	_, _, err = parsePortMapping("http:80")
	g.Expect(err).To(HaveOccurred())
}

func TestNamespaceFallback(t *testing.T) {
	g := NewWithT(t)

	rootArgs.namespace = ""
	cfg.Namespace = "staging"
	g.Expect(namespace()).To(Equal("staging"))

	rootArgs.namespace = "ops"
	g.Expect(namespace()).To(Equal("ops"))

	rootArgs.namespace = ""
	cfg.Namespace = "default"
}

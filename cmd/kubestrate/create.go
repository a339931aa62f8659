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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubestrate/kubestrate/pkg/build"
	"github.com/kubestrate/kubestrate/pkg/ops"
	"github.com/kubestrate/kubestrate/pkg/template"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create workloads and networking resources from the template catalog.",
}

type createFlags struct {
	template      string
	image         string
	ports         []int32
	env           []string
	command       []string
	args          []string
	replicas      int32
	serviceType   string
	schedule      string
	completions   int32
	parallelism   int32
	backoffLimit  int32
	hosts         []string
	services      []string
	tlsSecret     string
	annotations   []string
	restartPolicy string
}

var createArgs createFlags

var createDeploymentCmd = &cobra.Command{
	Use:   "deployment <name>",
	Short: "Create a deployment from a workload template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateDeploymentCmd,
}

var createPodCmd = &cobra.Command{
	Use:   "pod <name>",
	Short: "Create a bare pod from a workload template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreatePodCmd,
}

var createServiceCmd = &cobra.Command{
	Use:   "service <name>",
	Short: "Create a service from a service template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateServiceCmd,
}

var createJobCmd = &cobra.Command{
	Use:   "job <name>",
	Short: "Create a run-to-completion job from a workload template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateJobCmd,
}

var createCronJobCmd = &cobra.Command{
	Use:   "cronjob <name>",
	Short: "Create a scheduled job from a workload template.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateCronJobCmd,
}

var createIngressCmd = &cobra.Command{
	Use:   "ingress <name>",
	Short: "Create an ingress routing hosts to backend services.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateIngressCmd,
}

var createNamespaceCmd = &cobra.Command{
	Use:   "namespace <name>",
	Short: "Create a namespace.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateNamespaceCmd,
}

func init() {
	for _, cmd := range []*cobra.Command{createDeploymentCmd, createPodCmd, createJobCmd, createCronJobCmd} {
		cmd.Flags().StringVarP(&createArgs.template, "template", "t", "",
			fmt.Sprintf("Workload template, one of: %s.", strings.Join(template.Workloads(), ", ")))
		cmd.Flags().StringVar(&createArgs.image, "image", "", "Container image overriding the template's image.")
		cmd.Flags().Int32SliceVar(&createArgs.ports, "port", nil, "Container port overriding the template's ports, repeatable.")
		cmd.Flags().StringSliceVar(&createArgs.env, "env", nil, "Environment variable as key=value, repeatable.")
		cmd.Flags().StringSliceVar(&createArgs.command, "command", nil, "Container entrypoint overriding the template's command.")
		cmd.Flags().StringSliceVar(&createArgs.args, "args", nil, "Container arguments overriding the template's args.")
		cmd.Flags().StringVar(&createArgs.restartPolicy, "restart-policy", "", "Pod restart policy overriding the template's policy.")
	}

	createDeploymentCmd.Flags().Int32Var(&createArgs.replicas, "replicas", 1, "Number of desired replicas.")

	createServiceCmd.Flags().StringVar(&createArgs.serviceType, "type", "ClusterIP",
		fmt.Sprintf("Service template, one of: %s.", strings.Join(template.ServiceTypes(), ", ")))
	createServiceCmd.Flags().StringSliceVar(&createArgs.services, "target", nil,
		"Port mapping as port:targetPort, repeatable. Defaults to the template's ports.")

	for _, cmd := range []*cobra.Command{createJobCmd, createCronJobCmd} {
		cmd.Flags().Int32Var(&createArgs.completions, "completions", 1, "Number of successful completions required.")
		cmd.Flags().Int32Var(&createArgs.parallelism, "parallelism", 1, "Maximum number of pods running in parallel.")
		cmd.Flags().Int32Var(&createArgs.backoffLimit, "backoff-limit", 6, "Number of retries before the job is marked failed.")
	}
	createCronJobCmd.Flags().StringVar(&createArgs.schedule, "schedule", "", "Cron schedule, e.g. '0 2 * * *'.")

	createIngressCmd.Flags().StringSliceVar(&createArgs.hosts, "host", nil, "Host served by the ingress, repeatable.")
	createIngressCmd.Flags().StringSliceVar(&createArgs.services, "service", nil,
		"Backend as name:port or path=name:port, repeatable.")
	createIngressCmd.Flags().StringVar(&createArgs.tlsSecret, "tls-secret", "", "Secret holding the TLS certificate for the hosts.")
	createIngressCmd.Flags().StringSliceVar(&createArgs.annotations, "annotation", nil, "Annotation as key=value, repeatable.")

	createCmd.AddCommand(createDeploymentCmd)
	createCmd.AddCommand(createPodCmd)
	createCmd.AddCommand(createServiceCmd)
	createCmd.AddCommand(createJobCmd)
	createCmd.AddCommand(createCronJobCmd)
	createCmd.AddCommand(createIngressCmd)
	createCmd.AddCommand(createNamespaceCmd)
	rootCmd.AddCommand(createCmd)
}

func runCreateDeploymentCmd(cmd *cobra.Command, args []string) error {
	overrides, err := workloadOverrides()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreateDeployment(ctx, ops.CreateDeploymentOptions{
		Name:      args[0],
		Namespace: namespace(),
		Template:  createArgs.template,
		Overrides: overrides,
		Replicas:  createArgs.replicas,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreatePodCmd(cmd *cobra.Command, args []string) error {
	overrides, err := workloadOverrides()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreatePod(ctx, args[0], namespace(), createArgs.template, overrides)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreateServiceCmd(cmd *cobra.Command, args []string) error {
	overrides, err := serviceOverrides()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreateService(ctx, args[0], namespace(), createArgs.serviceType, overrides)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreateJobCmd(cmd *cobra.Command, args []string) error {
	overrides, err := workloadOverrides()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreateJob(ctx, ops.CreateJobOptions{
		Name:      args[0],
		Namespace: namespace(),
		Template:  createArgs.template,
		Overrides: overrides,
		Job:       jobOptions(),
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreateCronJobCmd(cmd *cobra.Command, args []string) error {
	overrides, err := workloadOverrides()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreateCronJob(ctx, ops.CreateCronJobOptions{
		Name:      args[0],
		Namespace: namespace(),
		Schedule:  createArgs.schedule,
		Template:  createArgs.template,
		Overrides: overrides,
		Job:       jobOptions(),
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreateIngressCmd(cmd *cobra.Command, args []string) error {
	rules, err := ingressRules()
	if err != nil {
		return err
	}

	var tls []build.IngressTLS
	if createArgs.tlsSecret != "" {
		tls = append(tls, build.IngressTLS{Hosts: createArgs.hosts, SecretName: createArgs.tlsSecret})
	}

	annotations, err := parseKeyValues(createArgs.annotations)
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.CreateIngress(ctx, ops.CreateIngressOptions{
		Name:        args[0],
		Namespace:   namespace(),
		Rules:       rules,
		TLS:         tls,
		Annotations: annotations,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runCreateNamespaceCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Kubectl().CreateNamespace(ctx, args[0])
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

// workloadOverrides converts the create flags to template overrides.
func workloadOverrides() (*template.Overrides, error) {
	overrides := &template.Overrides{}
	changed := false

	if createArgs.image != "" {
		overrides.Image = &createArgs.image
		changed = true
	}
	if len(createArgs.ports) > 0 {
		for _, p := range createArgs.ports {
			overrides.Ports = append(overrides.Ports, template.Port{ContainerPort: p})
		}
		changed = true
	}
	if len(createArgs.env) > 0 {
		for _, kv := range createArgs.env {
			key, value, found := strings.Cut(kv, "=")
			if !found {
				return nil, fmt.Errorf("invalid env %q, expected key=value", kv)
			}
			overrides.Env = append(overrides.Env, template.EnvVar{Name: key, Value: value})
		}
		changed = true
	}
	if len(createArgs.command) > 0 {
		overrides.Command = createArgs.command
		changed = true
	}
	if len(createArgs.args) > 0 {
		overrides.Args = createArgs.args
		changed = true
	}
	if createArgs.restartPolicy != "" {
		overrides.RestartPolicy = &createArgs.restartPolicy
		changed = true
	}

	if !changed {
		return nil, nil
	}
	return overrides, nil
}

func serviceOverrides() (*template.ServiceOverrides, error) {
	if len(createArgs.services) == 0 {
		return nil, nil
	}

	overrides := &template.ServiceOverrides{}
	for _, mapping := range createArgs.services {
		port, targetPort, err := parsePortMapping(mapping)
		if err != nil {
			return nil, err
		}
		overrides.Ports = append(overrides.Ports, template.ServicePort{Port: port, TargetPort: targetPort})
	}
	return overrides, nil
}

func ingressRules() ([]build.IngressRule, error) {
	var paths []build.IngressPath
	for _, backend := range createArgs.services {
		path := ""
		spec := backend
		if p, rest, found := strings.Cut(backend, "="); found {
			path = p
			spec = rest
		}
		name, portStr, found := strings.Cut(spec, ":")
		if !found {
			return nil, fmt.Errorf("invalid service %q, expected name:port", backend)
		}
		port, err := strconv.ParseInt(portStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid service port %q: %w", portStr, err)
		}
		paths = append(paths, build.IngressPath{Path: path, ServiceName: name, ServicePort: int32(port)})
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("--service is required")
	}

	if len(createArgs.hosts) == 0 {
		return []build.IngressRule{{Paths: paths}}, nil
	}

	var rules []build.IngressRule
	for _, host := range createArgs.hosts {
		rules = append(rules, build.IngressRule{Host: host, Paths: paths})
	}
	return rules, nil
}

func jobOptions() build.JobOptions {
	return build.JobOptions{
		Completions:  createArgs.completions,
		Parallelism:  createArgs.parallelism,
		BackoffLimit: createArgs.backoffLimit,
	}
}

func parseKeyValues(kvs []string) (map[string]string, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("invalid value %q, expected key=value", kv)
		}
		out[key] = value
	}
	return out, nil
}

func parsePortMapping(mapping string) (int32, int32, error) {
	portStr, targetStr, found := strings.Cut(mapping, ":")
	if !found {
		targetStr = portStr
	}
	port, err := strconv.ParseInt(portStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	target, err := strconv.ParseInt(targetStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid target port %q: %w", targetStr, err)
	}
	return int32(port), int32(target), nil
}

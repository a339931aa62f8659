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
	"strings"

	"github.com/spf13/cobra"

	"github.com/kubestrate/kubestrate/pkg/ops"
	"github.com/kubestrate/kubestrate/pkg/template"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Patch the mutable fields of a resource.",
}

type updateFlags struct {
	image       string
	replicas    int32
	env         []string
	serviceType string
	selector    []string
}

var updateArgs updateFlags

var updateDeploymentCmd = &cobra.Command{
	Use:   "deployment <name>",
	Short: "Update a deployment's image, replicas or environment.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateDeploymentCmd,
}

var updateServiceCmd = &cobra.Command{
	Use:   "service <name>",
	Short: "Update a service's type or selector.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdateServiceCmd,
}

func init() {
	updateDeploymentCmd.Flags().StringVar(&updateArgs.image, "image", "", "New container image.")
	updateDeploymentCmd.Flags().Int32Var(&updateArgs.replicas, "replicas", -1, "New replica count.")
	updateDeploymentCmd.Flags().StringSliceVar(&updateArgs.env, "env", nil, "Environment variable as key=value, repeatable.")

	updateServiceCmd.Flags().StringVar(&updateArgs.serviceType, "type", "", "New service type.")
	updateServiceCmd.Flags().StringSliceVar(&updateArgs.selector, "selector", nil, "Selector label as key=value, repeatable.")

	updateCmd.AddCommand(updateDeploymentCmd)
	updateCmd.AddCommand(updateServiceCmd)
	rootCmd.AddCommand(updateCmd)
}

func runUpdateDeploymentCmd(cmd *cobra.Command, args []string) error {
	opts := ops.UpdateDeploymentOptions{
		Name:      args[0],
		Namespace: namespace(),
		Image:     updateArgs.image,
	}
	if updateArgs.replicas >= 0 {
		opts.Replicas = &updateArgs.replicas
	}
	for _, kv := range updateArgs.env {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return fmt.Errorf("invalid env %q, expected key=value", kv)
		}
		opts.Env = append(opts.Env, template.EnvVar{Name: key, Value: value})
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.UpdateDeployment(ctx, opts)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runUpdateServiceCmd(cmd *cobra.Command, args []string) error {
	selector, err := parseKeyValues(updateArgs.selector)
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.UpdateService(ctx, ops.UpdateServiceOptions{
		Name:      args[0],
		Namespace: namespace(),
		Type:      updateArgs.serviceType,
		Selector:  selector,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

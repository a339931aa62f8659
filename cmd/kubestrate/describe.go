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
	"context"

	"github.com/spf13/cobra"

	"github.com/kubestrate/kubestrate/pkg/ops"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the details of one resource.",
}

func init() {
	describeCmd.AddCommand(describeCommand("deployment", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribeDeployment(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("pod", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribePod(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("service", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribeService(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("job", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribeJob(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("cronjob", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribeCronJob(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("ingress", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DescribeIngress(ctx, name, namespace())
	}))
	describeCmd.AddCommand(describeCommand("node", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.Kubectl().DescribeNode(ctx, name)
	}))
	describeCmd.AddCommand(describeCommand("namespace", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.Kubectl().DescribeNamespace(ctx, name)
	}))
	describeCmd.AddCommand(describeCommand("statefulset", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.Kubectl().DescribeStatefulSet(ctx, name, namespace())
	}))

	rootCmd.AddCommand(describeCmd)
}

func describeCommand(use string, describe func(context.Context, *ops.Manager, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: "Describe a " + use + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := operationContext()
			defer cancel()

			result, err := describe(ctx, m, args[0])
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	}
}

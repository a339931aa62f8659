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

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "List resources.",
}

type getFlags struct {
	labelSelector string
	allNamespaces bool
	output        string
}

var getArgs getFlags

func init() {
	getCmd.PersistentFlags().StringVarP(&getArgs.labelSelector, "selector", "l", "",
		"Label selector to filter on, e.g. -l app=web.")
	getCmd.PersistentFlags().BoolVarP(&getArgs.allNamespaces, "all-namespaces", "A", false,
		"List resources across all namespaces.")
	getCmd.PersistentFlags().StringVarP(&getArgs.output, "output", "o", "",
		"Output format passed to kubectl-backed listings.")

	getCmd.AddCommand(listCommand("deployments", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListDeployments(ctx, ns, getArgs.labelSelector)
	}))
	getCmd.AddCommand(listCommand("pods", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListPods(ctx, ns, getArgs.labelSelector)
	}))
	getCmd.AddCommand(listCommand("services", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListServices(ctx, ns, getArgs.labelSelector)
	}))
	getCmd.AddCommand(listCommand("jobs", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListJobs(ctx, ns, getArgs.labelSelector)
	}))
	getCmd.AddCommand(listCommand("cronjobs", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListCronJobs(ctx, ns, getArgs.labelSelector)
	}))
	getCmd.AddCommand(listCommand("ingresses", func(ctx context.Context, m *ops.Manager, ns string) (string, error) {
		return m.ListIngresses(ctx, ns, getArgs.labelSelector)
	}))

	getCmd.AddCommand(&cobra.Command{
		Use:   "namespaces",
		Short: "List the cluster namespaces.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
				return m.Kubectl().GetNamespaces(ctx, getArgs.labelSelector, getArgs.output)
			})
		},
	})
	getCmd.AddCommand(&cobra.Command{
		Use:   "nodes",
		Short: "List the cluster nodes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
				return m.Kubectl().GetNodes(ctx, getArgs.labelSelector, getArgs.output)
			})
		},
	})
	getCmd.AddCommand(&cobra.Command{
		Use:   "statefulsets",
		Short: "List the statefulsets of the namespace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
				return m.Kubectl().GetStatefulSets(ctx, listNamespace(), getArgs.labelSelector, getArgs.output)
			})
		},
	})
	getCmd.AddCommand(&cobra.Command{
		Use:   "quota",
		Short: "List the resource quotas of the namespace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
				return m.Kubectl().GetQuota(ctx, namespace(), getArgs.output)
			})
		},
	})
	getCmd.AddCommand(&cobra.Command{
		Use:   "tracked",
		Short: "List the resources created and tracked in this session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}
			result, err := m.Tracked()
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	})

	rootCmd.AddCommand(getCmd)
}

func listCommand(use string, list func(context.Context, *ops.Manager, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "List the " + use + " of the namespace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := operationContext()
			defer cancel()

			result, err := list(ctx, m, listNamespace())
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	}
}

// listNamespace returns an empty namespace for all-namespace listings.
func listNamespace() string {
	if getArgs.allNamespaces {
		return ""
	}
	return namespace()
}

func runKubectlGet(get func(context.Context, *ops.Manager) (string, error)) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := get(ctx, m)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

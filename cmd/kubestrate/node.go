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

	"github.com/kubestrate/kubestrate/pkg/invoke"
	"github.com/kubestrate/kubestrate/pkg/ops"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Node maintenance operations.",
}

type drainFlags struct {
	force            bool
	ignoreDaemonSets bool
	deleteLocalData  bool
}

var drainArgs drainFlags

var nodeDrainCmd = &cobra.Command{
	Use:   "drain <name>",
	Short: "Evict the workloads from a node.",
	Args:  cobra.ExactArgs(1),
	RunE:  runNodeDrainCmd,
}

func init() {
	nodeCmd.AddCommand(nodeCommand("cordon", "Mark a node as unschedulable.",
		func(ctx context.Context, m *ops.Manager, name string) (string, error) {
			return m.Kubectl().Cordon(ctx, name)
		}))
	nodeCmd.AddCommand(nodeCommand("uncordon", "Mark a node as schedulable.",
		func(ctx context.Context, m *ops.Manager, name string) (string, error) {
			return m.Kubectl().Uncordon(ctx, name)
		}))

	nodeDrainCmd.Flags().BoolVar(&drainArgs.force, "force", false,
		"Continue even if there are pods not managed by a controller.")
	nodeDrainCmd.Flags().BoolVar(&drainArgs.ignoreDaemonSets, "ignore-daemonsets", false,
		"Ignore DaemonSet-managed pods.")
	nodeDrainCmd.Flags().BoolVar(&drainArgs.deleteLocalData, "delete-local-data", false,
		"Continue even if there are pods using emptyDir volumes.")
	nodeCmd.AddCommand(nodeDrainCmd)

	nodeCmd.AddCommand(&cobra.Command{
		Use:   "top",
		Short: "Show node resource usage, requires metrics-server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
				return m.Kubectl().TopNodes(ctx)
			})
		},
	})

	rootCmd.AddCommand(nodeCmd)
}

func nodeCommand(use, short string, run func(context.Context, *ops.Manager, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := operationContext()
			defer cancel()

			result, err := run(ctx, m, args[0])
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	}
}

func runNodeDrainCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Kubectl().Drain(ctx, args[0], invoke.DrainOptions{
		Force:            drainArgs.force,
		IgnoreDaemonSets: drainArgs.ignoreDaemonSets,
		DeleteLocalData:  drainArgs.deleteLocalData,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

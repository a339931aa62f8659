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

var clusterInfoCmd = &cobra.Command{
	Use:   "cluster-info",
	Short: "Show the cluster control plane endpoints.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
			return m.Kubectl().ClusterInfo(ctx)
		})
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show pod resource usage, requires metrics-server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKubectlGet(func(ctx context.Context, m *ops.Manager) (string, error) {
			return m.PodMetrics(ctx, listNamespace(), getArgs.labelSelector)
		})
	},
}

func init() {
	rootCmd.AddCommand(clusterInfoCmd)
	rootCmd.AddCommand(topCmd)
}

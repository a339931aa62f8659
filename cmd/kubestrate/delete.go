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

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete resources.",
}

type deleteFlags struct {
	force bool
}

var deleteArgs deleteFlags

func init() {
	deleteCmd.AddCommand(deleteCommand("deployment", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeleteDeployment(ctx, name, namespace())
	}))
	deleteCmd.AddCommand(deleteCommand("pod", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeletePod(ctx, name, namespace())
	}))
	deleteCmd.AddCommand(deleteCommand("service", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeleteService(ctx, name, namespace())
	}))
	deleteCmd.AddCommand(deleteCommand("job", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeleteJob(ctx, name, namespace())
	}))
	deleteCmd.AddCommand(deleteCommand("cronjob", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeleteCronJob(ctx, name, namespace())
	}))
	deleteCmd.AddCommand(deleteCommand("ingress", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.DeleteIngress(ctx, name, namespace())
	}))

	deleteNamespaceCmd := deleteCommand("namespace", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.Kubectl().DeleteNamespace(ctx, name, deleteArgs.force)
	})
	deleteNamespaceCmd.Flags().BoolVar(&deleteArgs.force, "force", false, "Force the deletion.")
	deleteCmd.AddCommand(deleteNamespaceCmd)

	rootCmd.AddCommand(deleteCmd)
}

func deleteCommand(use string, del func(context.Context, *ops.Manager, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: "Delete a " + use + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := operationContext()
			defer cancel()

			result, err := del(ctx, m, args[0])
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	}
}

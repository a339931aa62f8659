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

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Fetch workload logs.",
}

type logsFlags struct {
	container string
	tail      int64
}

var logsArgs logsFlags

func init() {
	logsCmd.PersistentFlags().StringVarP(&logsArgs.container, "container", "c", "",
		"Container to read the logs from.")
	logsCmd.PersistentFlags().Int64Var(&logsArgs.tail, "tail", -1,
		"Number of trailing log lines to show, -1 for all.")

	logsCmd.AddCommand(logsCommand("pod", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.PodLogs(ctx, name, namespace(), logOptions())
	}))
	logsCmd.AddCommand(logsCommand("job", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.JobLogs(ctx, name, namespace(), logOptions())
	}))
	logsCmd.AddCommand(logsCommand("cronjob", func(ctx context.Context, m *ops.Manager, name string) (string, error) {
		return m.CronJobLogs(ctx, name, namespace(), logOptions())
	}))

	rootCmd.AddCommand(logsCmd)
}

func logOptions() ops.LogOptions {
	opts := ops.LogOptions{Container: logsArgs.container}
	if logsArgs.tail >= 0 {
		opts.TailLines = &logsArgs.tail
	}
	return opts
}

func logsCommand(use string, logs func(context.Context, *ops.Manager, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: "Fetch the logs of a " + use + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := operationContext()
			defer cancel()

			result, err := logs(ctx, m, args[0])
			if err != nil {
				return err
			}
			rootCmd.Println(result)
			return nil
		},
	}
}

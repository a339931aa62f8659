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
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <pod> -- <command> [args...]",
	Short: "Execute a command inside a pod.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExecCmd,
}

type execFlags struct {
	container string
}

var execArgs execFlags

func init() {
	execCmd.Flags().StringVarP(&execArgs.container, "container", "c", "",
		"Container to run the command in.")

	rootCmd.AddCommand(execCmd)
}

func runExecCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.ExecPod(ctx, args[0], namespace(), execArgs.container, args[1:])
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

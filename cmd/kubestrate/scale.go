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

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Scale workloads.",
}

type scaleFlags struct {
	replicas int32
}

var scaleArgs scaleFlags

var scaleDeploymentCmd = &cobra.Command{
	Use:   "deployment <name>",
	Short: "Set the replica count of a deployment.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScaleDeploymentCmd,
}

func init() {
	scaleDeploymentCmd.Flags().Int32Var(&scaleArgs.replicas, "replicas", 1, "Desired number of replicas.")

	scaleCmd.AddCommand(scaleDeploymentCmd)
	rootCmd.AddCommand(scaleCmd)
}

func runScaleDeploymentCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.ScaleDeployment(ctx, args[0], namespace(), scaleArgs.replicas)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

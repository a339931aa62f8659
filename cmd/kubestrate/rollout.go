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
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Manage workload rollouts.",
}

type rolloutFlags struct {
	action string
}

var rolloutArgs rolloutFlags

var rolloutDeploymentCmd = &cobra.Command{
	Use:   "deployment <name>",
	Short: "Inspect or change the rollout of a deployment.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolloutDeploymentCmd,
}

func init() {
	rolloutDeploymentCmd.Flags().StringVar(&rolloutArgs.action, "action", "status",
		fmt.Sprintf("Rollout action, one of: %s.", strings.Join(ops.RolloutActions, ", ")))

	rolloutCmd.AddCommand(rolloutDeploymentCmd)
	rootCmd.AddCommand(rolloutCmd)
}

func runRolloutDeploymentCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.RolloutDeployment(ctx, args[0], namespace(), rolloutArgs.action)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

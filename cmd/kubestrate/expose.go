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

	"github.com/spf13/cobra"
)

var exposeCmd = &cobra.Command{
	Use:   "expose <deployment>",
	Short: "Expose a deployment as a service.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExposeCmd,
}

type exposeFlags struct {
	port        int32
	targetPort  int32
	serviceType string
}

var exposeArgs exposeFlags

func init() {
	exposeCmd.Flags().Int32Var(&exposeArgs.port, "port", 0, "Port the service listens on.")
	exposeCmd.Flags().Int32Var(&exposeArgs.targetPort, "target-port", 0,
		"Container port to route to, defaults to the service port.")
	exposeCmd.Flags().StringVar(&exposeArgs.serviceType, "type", "ClusterIP", "Type of the created service.")

	rootCmd.AddCommand(exposeCmd)
}

func runExposeCmd(cmd *cobra.Command, args []string) error {
	if exposeArgs.port == 0 {
		return fmt.Errorf("--port is required")
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.ExposeDeployment(ctx, args[0], namespace(),
		exposeArgs.port, exposeArgs.targetPort, exposeArgs.serviceType)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

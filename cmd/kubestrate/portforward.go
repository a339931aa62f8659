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
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var portForwardCmd = &cobra.Command{
	Use:   "port-forward <service> <local>:<remote>",
	Short: "Forward a local port to a service.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPortForwardCmd,
}

func init() {
	rootCmd.AddCommand(portForwardCmd)
}

func runPortForwardCmd(cmd *cobra.Command, args []string) error {
	localStr, remoteStr, found := strings.Cut(args[1], ":")
	if !found {
		return fmt.Errorf("invalid port mapping %q, expected local:remote", args[1])
	}
	local, err := strconv.Atoi(localStr)
	if err != nil {
		return fmt.Errorf("invalid local port %q: %w", localStr, err)
	}
	remote, err := strconv.Atoi(remoteStr)
	if err != nil {
		return fmt.Errorf("invalid remote port %q: %w", remoteStr, err)
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.PortForwardService(ctx, args[0], namespace(), local, remote)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

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

	"github.com/kubestrate/kubestrate/pkg/invoke"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the configured kubectl and helm binaries meet the minimum versions.",
	RunE:  runCheckCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	kubectl, helm, err := newToolWrappers()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	kubectlVersion, err := kubectl.ClientVersion(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("kubectl version check failed")
	} else if err := invoke.CheckVersion("kubectl", kubectlVersion, cfg.Tools.MinKubectlVersion); err != nil {
		logger.Warn().Msg(err.Error())
	} else {
		rootCmd.Println("kubectl", kubectlVersion, "ok")
	}

	helmVersion, err := helm.Version(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("helm version check failed")
	} else if err := invoke.CheckVersion("helm", helmVersion, cfg.Tools.MinHelmVersion); err != nil {
		logger.Warn().Msg(err.Error())
	} else {
		rootCmd.Println("helm", helmVersion, "ok")
	}

	return nil
}

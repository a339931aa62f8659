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

	"github.com/kubestrate/kubestrate/pkg/invoke"
)

var helmCmd = &cobra.Command{
	Use:   "helm",
	Short: "Manage helm releases through the configured helm binary.",
}

type helmFlags struct {
	version         string
	repo            string
	values          []string
	wait            bool
	createNamespace bool
	force           bool
	resetValues     bool
}

var helmArgs helmFlags

var helmRepoAddCmd = &cobra.Command{
	Use:   "repo-add <name> <url>",
	Short: "Register a chart repository.",
	Args:  cobra.ExactArgs(2),
	RunE:  runHelmRepoAddCmd,
}

var helmShowValuesCmd = &cobra.Command{
	Use:   "show-values <chart>",
	Short: "Print the default values of a chart.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHelmShowValuesCmd,
}

var helmInstallCmd = &cobra.Command{
	Use:   "install <release> <chart>",
	Short: "Install a chart as a named release.",
	Args:  cobra.ExactArgs(2),
	RunE:  runHelmInstallCmd,
}

var helmUpgradeCmd = &cobra.Command{
	Use:   "upgrade <release> <chart>",
	Short: "Upgrade an existing release.",
	Args:  cobra.ExactArgs(2),
	RunE:  runHelmUpgradeCmd,
}

func init() {
	for _, cmd := range []*cobra.Command{helmShowValuesCmd, helmInstallCmd, helmUpgradeCmd} {
		cmd.Flags().StringVar(&helmArgs.version, "version", "", "Chart version, defaults to the latest.")
		cmd.Flags().StringVar(&helmArgs.repo, "repo", "", "Chart repository URL.")
	}
	for _, cmd := range []*cobra.Command{helmInstallCmd, helmUpgradeCmd} {
		cmd.Flags().StringSliceVar(&helmArgs.values, "set", nil, "Chart value as key=value, repeatable.")
		cmd.Flags().BoolVar(&helmArgs.wait, "wait", false, "Wait until the release resources are ready.")
	}
	helmInstallCmd.Flags().BoolVar(&helmArgs.createNamespace, "create-namespace", false,
		"Create the release namespace if not present.")
	helmUpgradeCmd.Flags().BoolVar(&helmArgs.force, "force", false, "Replace resources through delete and recreate.")
	helmUpgradeCmd.Flags().BoolVar(&helmArgs.resetValues, "reset-values", false,
		"Reset the values to the chart defaults.")

	helmCmd.AddCommand(helmRepoAddCmd)
	helmCmd.AddCommand(helmShowValuesCmd)
	helmCmd.AddCommand(helmInstallCmd)
	helmCmd.AddCommand(helmUpgradeCmd)
	rootCmd.AddCommand(helmCmd)
}

func runHelmRepoAddCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Helm().RepoAdd(ctx, args[0], args[1], invoke.RepoAddOptions{})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runHelmShowValuesCmd(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Helm().ShowValues(ctx, args[0], helmArgs.version, helmArgs.repo)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runHelmInstallCmd(cmd *cobra.Command, args []string) error {
	values, err := helmValues()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Helm().Install(ctx, args[0], args[1], namespace(), invoke.InstallOptions{
		ReleaseOptions: invoke.ReleaseOptions{
			Values:  values,
			Version: helmArgs.version,
			Repo:    helmArgs.repo,
			Wait:    helmArgs.wait,
			Timeout: rootArgs.timeout.String(),
		},
		CreateNamespace: helmArgs.createNamespace,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func runHelmUpgradeCmd(cmd *cobra.Command, args []string) error {
	values, err := helmValues()
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Helm().Upgrade(ctx, args[0], args[1], namespace(), invoke.UpgradeOptions{
		ReleaseOptions: invoke.ReleaseOptions{
			Values:  values,
			Version: helmArgs.version,
			Repo:    helmArgs.repo,
			Wait:    helmArgs.wait,
			Timeout: rootArgs.timeout.String(),
		},
		Force:       helmArgs.force,
		ResetValues: helmArgs.resetValues,
	})
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

func helmValues() (map[string]interface{}, error) {
	if len(helmArgs.values) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(helmArgs.values))
	for _, kv := range helmArgs.values {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("invalid value %q, expected key=value", kv)
		}
		out[key] = value
	}
	return out, nil
}

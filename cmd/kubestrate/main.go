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
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/kubestrate/kubestrate/pkg/config"
)

var VERSION = "0.1.0-dev.0"

const PROJECT = "kubestrate"

var rootCmd = &cobra.Command{
	Use:           PROJECT,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "A command line utility to create, inspect, and tear down Kubernetes workloads from templates.",
	Long: `Kubestrate manages Kubernetes workloads declaratively from a built-in template catalog.

Create resources from templates:

- kubestrate create deployment <name> --template web-server --replicas 2
- kubestrate create pod <name> --template python
- kubestrate create job <name> --template python --completions 3
- kubestrate create cronjob <name> --template python --schedule "0 2 * * *"
- kubestrate create service <name> --type LoadBalancer
- kubestrate create ingress <name> --host example.com --service web:80

Inspect and manage resources:

- kubestrate get deployments [-n <namespace>] [-l <selector>]
- kubestrate describe deployment <name> -n <namespace>
- kubestrate scale deployment <name> --replicas 5
- kubestrate rollout deployment <name> --action undo
- kubestrate apply -f manifests.yaml [--force]

Tear down everything created in this session:

- kubestrate get tracked
- kubestrate teardown
`,
}

type rootFlags struct {
	namespace  string
	kubeconfig string
	timeout    time.Duration
}

var (
	rootArgs = rootFlags{}
	logger   = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg      = config.NewConfig()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootArgs.namespace, "namespace", "n", "",
		"The namespace scope for the operation.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.kubeconfig, "kubeconfig", "",
		"Path to the kubeconfig file. When unset, in-cluster configuration is tried first.")
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", time.Minute,
		"The length of time to wait before giving up on the current operation.")

	rootCmd.DisableAutoGenTag = true
	rootCmd.SetOut(os.Stdout)
}

func main() {
	loadConfig()
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func loadConfig() {
	if c, err := config.Read(""); err != nil {
		logger.Error().Msg(fmt.Errorf("loading the config failed, error: %w", err).Error())
	} else {
		cfg = c
	}
}

// namespace returns the namespace flag when set, the configured default
// otherwise.
func namespace() string {
	if rootArgs.namespace != "" {
		return rootArgs.namespace
	}
	return cfg.Namespace
}

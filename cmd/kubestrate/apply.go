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
	"io"
	"os"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a multi-document manifest, creating or replacing each resource.",
	RunE:  runApplyCmd,
}

type applyFlags struct {
	filename string
	force    bool
}

var applyArgs applyFlags

func init() {
	applyCmd.Flags().StringVarP(&applyArgs.filename, "filename", "f", "",
		"Path to the manifest file, or '-' to read from stdin.")
	applyCmd.Flags().BoolVar(&applyArgs.force, "force", false,
		"Recreate resources whose replace is rejected by the API server.")

	rootCmd.AddCommand(applyCmd)
}

func runApplyCmd(cmd *cobra.Command, args []string) error {
	if applyArgs.filename == "" {
		return fmt.Errorf("-f is required")
	}

	var manifest []byte
	var err error
	if applyArgs.filename == "-" {
		manifest, err = io.ReadAll(os.Stdin)
	} else {
		manifest, err = os.ReadFile(applyArgs.filename)
	}
	if err != nil {
		return err
	}

	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()

	result, err := m.Apply(ctx, string(manifest), namespace(), applyArgs.force)
	if err != nil {
		return err
	}
	rootCmd.Println(result)
	return nil
}

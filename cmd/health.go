/*
Copyright © 2025 Axon Dendrite <axondendriteplus@gmail.com>

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
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/axondendriteplus/legaltrans/internal/translator"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the translation server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		client := translator.New(apiURL, logger)
		status, err := client.Health(cmd.Context())

		fmt.Printf("Client platform: %s\n", runtime.GOOS)
		if !status.Available {
			fmt.Printf("Server status: Offline (%s)\n", client.BaseURL())
			return fmt.Errorf("cannot connect to translation server: %w", err)
		}

		fmt.Printf("Server status: Online (%s)\n", client.BaseURL())
		fmt.Printf("Backend device: %s\n", status.Device)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

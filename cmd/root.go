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
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/axondendriteplus/legaltrans/internal/translator"
)

var version = "0.1.0"

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "legaltrans",
	Short: "Legal English to Hindi document translator",
	Long: `Translate English legal text and documents (.txt, .pdf, .docx) to Hindi
using a remote LegalLoRA-IndicTrans2 model server.

The API URL is taken from --api-url, the LEGALTRANS_API_URL environment
variable, or a .env file in the working directory.

Use "legaltrans translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(resolveAPIURL)
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Translation API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// resolveAPIURL fills apiURL from the environment when the flag is unset.
func resolveAPIURL() {
	_ = godotenv.Load()
	if apiURL == "" {
		apiURL = os.Getenv("LEGALTRANS_API_URL")
	}
	if apiURL == "" {
		apiURL = translator.DefaultBaseURL
	}
}

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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/axondendriteplus/legaltrans/internal/document"
	"github.com/axondendriteplus/legaltrans/internal/exporter"
	"github.com/axondendriteplus/legaltrans/internal/extractor"
	"github.com/axondendriteplus/legaltrans/internal/store"
	"github.com/axondendriteplus/legaltrans/internal/translator"
	"github.com/axondendriteplus/legaltrans/internal/workflow"
)

var (
	textInput  string
	inputFile  string
	outputFile string
	outFormat  string

	useRemote    bool
	saveOriginal bool

	maxLength   int
	doSample    bool
	temperature float64
	numBeams    int

	dbPath string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate English legal text or a document to Hindi",
	Long: `Translate English legal text or a document (.txt, .pdf, .docx) to Hindi.

Input is either inline text (--text) or a file (--input). File contents are
extracted locally before translation; with --remote the raw file is sent to the
server, which extracts and translates it in one round trip.

Translation failures are reported as the Hindi message the translation would
have carried; the command itself still completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (textInput == "") == (inputFile == "") {
			return fmt.Errorf("exactly one of --text or --input is required")
		}
		format, err := exportFormat()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		logger := newLogger()
		defer logger.Sync()

		client := translator.New(apiURL, logger)
		params := translator.Params{
			MaxLength:   maxLength,
			DoSample:    doSample,
			Temperature: temperature,
			NumBeams:    numBeams,
		}

		if textInput != "" {
			return translateInline(ctx, client, params, format)
		}
		return translateDocument(ctx, client, params, format, extractor.New(logger))
	},
}

func translateInline(ctx context.Context, client *translator.Client, params translator.Params, format document.Extension) error {
	result, err := client.TranslateText(ctx, textInput, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		fmt.Println(translator.Message(err))
		return nil
	}

	if outputFile == "" {
		fmt.Println(result.Translation)
	} else if err := writeExport(result.Translation, format, outputFile); err != nil {
		return err
	}
	printCaption(result)
	return nil
}

func translateDocument(ctx context.Context, client *translator.Client, params translator.Params, format document.Extension, ex *extractor.Extractor) error {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	doc, err := document.New(inputFile, raw)
	if err != nil {
		return err
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	session := workflow.NewSession()
	session.Upload(doc, ex)
	if warn := session.ExtractionWarning(); warn != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; continuing with empty text\n", warn)
	}

	docID := uuid.New().String()
	_ = db.SaveDocument(ctx, store.DocumentRecord{
		ID:               docID,
		Name:             doc.Name,
		Ext:              string(doc.Ext),
		SizeBytes:        len(doc.Raw),
		ExtractionMethod: string(session.ExtractionMethod()),
	})

	fmt.Fprintf(os.Stderr, "Translating %s...\n", doc.Name)

	var result *translator.Result
	if useRemote {
		result, err = session.TranslateRemote(ctx, client, params)
	} else {
		result, err = session.Translate(ctx, client, params)
	}
	if err != nil {
		_ = db.SaveAttempt(ctx, store.AttemptRecord{
			ID:         uuid.New().String(),
			DocumentID: docID,
			Status:     string(session.State()),
			Error:      session.FailureReason(),
		})
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		fmt.Println(translator.Message(err))
		return nil
	}

	_ = db.SaveAttempt(ctx, store.AttemptRecord{
		ID:          uuid.New().String(),
		DocumentID:  docID,
		Status:      string(session.State()),
		Translation: result.Translation,
		Device:      deviceFrom(result.ModelInfo),
		ElapsedMs:   int(result.Elapsed.Milliseconds()),
	})

	payload, name, err := session.Export(format)
	if err != nil {
		return err
	}
	target := outputFile
	if target == "" {
		target = name
	}
	if err := writeFile(target, payload); err != nil {
		return err
	}
	fmt.Printf("Saved translation to %s\n", target)

	if saveOriginal && session.OriginalText() != "" {
		originalTarget := filepath.Join(filepath.Dir(target), document.OriginalName(doc.Stem(), document.ExtTxt))
		if err := writeFile(originalTarget, exporter.ToTxtBytes(session.OriginalText())); err != nil {
			return err
		}
		fmt.Printf("Saved server-extracted original to %s\n", originalTarget)
	}

	printCaption(result)
	return nil
}

func exportFormat() (document.Extension, error) {
	switch outFormat {
	case "txt":
		return document.ExtTxt, nil
	case "docx":
		return document.ExtDocx, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: txt, docx)", outFormat)
	}
}

func writeExport(translation string, format document.Extension, target string) error {
	var payload []byte
	switch format {
	case document.ExtDocx:
		var err error
		payload, err = exporter.ToDocxBytes(translation)
		if err != nil {
			return err
		}
	default:
		payload = exporter.ToTxtBytes(translation)
	}
	if err := writeFile(target, payload); err != nil {
		return err
	}
	fmt.Printf("Saved translation to %s\n", target)
	return nil
}

func writeFile(target string, data []byte) error {
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func printCaption(result *translator.Result) {
	if device := deviceFrom(result.ModelInfo); device != "" {
		fmt.Fprintf(os.Stderr, "Translation completed in %.2f seconds using %s device.\n",
			result.Elapsed.Seconds(), device)
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&textInput, "text", "t", "", "English legal text to translate")
	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Document to translate (.txt, .pdf, .docx)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default translated_<stem>.<format>)")
	translateCmd.Flags().StringVarP(&outFormat, "format", "f", "txt", "Output format: txt or docx")

	translateCmd.Flags().BoolVar(&useRemote, "remote", false, "Send the raw file to the server for extraction and translation")
	translateCmd.Flags().BoolVar(&saveOriginal, "save-original", false, "Also save the server-extracted original text (remote mode)")

	translateCmd.Flags().IntVar(&maxLength, "max-length", 512, "Maximum length of the generated translation (100-1024)")
	translateCmd.Flags().BoolVar(&doSample, "sample", false, "Enable sampling for more creative translations")
	translateCmd.Flags().Float64Var(&temperature, "temperature", 0.7, "Sampling temperature (0.1-1.5, used only with --sample)")
	translateCmd.Flags().IntVar(&numBeams, "beams", 5, "Number of beams considered during generation (1-10)")

	translateCmd.Flags().StringVar(&dbPath, "db", store.DefaultDSN, "History database (in-memory by default)")
}

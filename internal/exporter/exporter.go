// Package exporter serializes translated text into downloadable txt and docx
// payloads. Both functions are pure: identical input yields identical bytes.
package exporter

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// ToTxtBytes encodes text as UTF-8 with no transformation.
func ToTxtBytes(text string) []byte {
	return []byte(text)
}

// ToDocxBytes serializes text as a Word document with one paragraph per
// blank-line-delimited segment, preserving order.
func ToDocxBytes(text string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	for _, segment := range SplitParagraphs(text) {
		doc.AddParagraph().AddText(segment)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize docx: %w", err)
	}
	return buf.Bytes(), nil
}

// SplitParagraphs splits text on blank-line boundaries (two consecutive
// newlines) into paragraph segments.
func SplitParagraphs(text string) []string {
	return strings.Split(text, "\n\n")
}

// Package document holds the value types describing an uploaded file and the
// naming conventions for translated output artifacts.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extension is a supported upload format.
type Extension string

const (
	ExtTxt  Extension = "txt"
	ExtPDF  Extension = "pdf"
	ExtDocx Extension = "docx"
)

// MIME types for the supported formats, used when shipping the raw file to the
// remote endpoint and when naming download artifacts.
var mimeTypes = map[Extension]string{
	ExtTxt:  "text/plain",
	ExtPDF:  "application/pdf",
	ExtDocx: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MIMEType returns the MIME type for ext, or application/octet-stream when the
// extension is not one of the supported formats.
func MIMEType(ext Extension) string {
	if m, ok := mimeTypes[ext]; ok {
		return m
	}
	return "application/octet-stream"
}

// ParseExtension maps a file name to its supported extension.
func ParseExtension(name string) (Extension, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "txt":
		return ExtTxt, nil
	case "pdf":
		return ExtPDF, nil
	case "docx":
		return ExtDocx, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (supported: .txt, .pdf, .docx)", filepath.Ext(name))
	}
}

// Document is an uploaded file. It is immutable once constructed; a new upload
// replaces the whole value.
type Document struct {
	Name     string
	MIMEType string
	Raw      []byte
	Ext      Extension
}

// New builds a Document from a file name and its raw bytes.
func New(name string, raw []byte) (Document, error) {
	ext, err := ParseExtension(name)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Name:     filepath.Base(name),
		MIMEType: MIMEType(ext),
		Raw:      raw,
		Ext:      ext,
	}, nil
}

// Stem returns the document name without its extension.
func (d Document) Stem() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// TranslatedName names the translated artifact for a document stem.
func TranslatedName(stem string, ext Extension) string {
	return fmt.Sprintf("translated_%s.%s", stem, ext)
}

// OriginalName names the extracted-original artifact for a document stem.
func OriginalName(stem string, ext Extension) string {
	return fmt.Sprintf("original_%s.%s", stem, ext)
}

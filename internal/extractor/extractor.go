// Package extractor converts uploaded document bytes into plain text. Every
// failure degrades to the best text obtainable (at worst an empty string with a
// failure marker); Extract never panics.
package extractor

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/axondendriteplus/legaltrans/internal/document"
)

// Method records which extraction strategy produced the text.
type Method string

const (
	// MethodPrimary is the full-featured reader (text layer, complex layouts).
	MethodPrimary Method = "primary"
	// MethodFallback is the simpler page-by-page reader used when the primary
	// reader fails.
	MethodFallback Method = "fallback"
	// MethodDirectDecode is a straight byte decode (txt, docx paragraph walk).
	MethodDirectDecode Method = "direct-decode"
	// MethodFailed marks a document from which no text could be obtained.
	MethodFailed Method = "failed"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindDecode means the bytes were not valid text for the declared format.
	KindDecode ErrorKind = "decode"
	// KindExtraction means every extraction strategy failed.
	KindExtraction ErrorKind = "extraction"
)

// Error is a non-fatal extraction failure. Callers surface it as a warning and
// continue with the (empty) text in the accompanying Result.
type Error struct {
	Kind ErrorKind
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Kind, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the extracted text plus the strategy that produced it.
type Result struct {
	Text   string
	Method Method
}

// Extractor turns raw document bytes into plain text.
type Extractor struct {
	logger *zap.Logger

	// PDF stages, overridable in tests.
	pdfPrimary  func([]byte) (string, error)
	pdfFallback func([]byte) (string, error)
}

// New creates an Extractor.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		logger:      logger,
		pdfPrimary:  pdfTextPrimary,
		pdfFallback: pdfTextFallback,
	}
}

// Extract converts doc's raw bytes into plain text according to its declared
// extension. The returned error is always a *Error and never fatal: the Result
// is usable (possibly empty) regardless.
func (e *Extractor) Extract(doc document.Document) (Result, error) {
	switch doc.Ext {
	case document.ExtTxt:
		return e.extractTxt(doc)
	case document.ExtDocx:
		return e.extractDocx(doc)
	case document.ExtPDF:
		return e.extractPDF(doc)
	default:
		return Result{Method: MethodFailed}, &Error{
			Kind: KindExtraction,
			Name: doc.Name,
			Err:  fmt.Errorf("unknown extension %q", doc.Ext),
		}
	}
}

func (e *Extractor) extractTxt(doc document.Document) (Result, error) {
	if !utf8.Valid(doc.Raw) {
		e.logger.Warn("text file is not valid UTF-8", zap.String("file", doc.Name))
		return Result{Method: MethodFailed}, &Error{
			Kind: KindDecode,
			Name: doc.Name,
			Err:  fmt.Errorf("invalid UTF-8"),
		}
	}
	return Result{Text: string(doc.Raw), Method: MethodDirectDecode}, nil
}

package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/axondendriteplus/legaltrans/internal/document"
)

// extractPDF tries the MuPDF text layer first (handles complex layouts), then
// falls back to a simpler page-by-page reader. Only when both stages fail does
// the result carry the failure marker.
func (e *Extractor) extractPDF(doc document.Document) (Result, error) {
	text, primaryErr := e.pdfPrimary(doc.Raw)
	if primaryErr == nil {
		return Result{Text: text, Method: MethodPrimary}, nil
	}

	e.logger.Warn("primary PDF extraction failed, trying fallback reader",
		zap.String("file", doc.Name),
		zap.Error(primaryErr))

	text, fallbackErr := e.pdfFallback(doc.Raw)
	if fallbackErr == nil {
		return Result{Text: text, Method: MethodFallback}, nil
	}

	return Result{Method: MethodFailed}, &Error{
		Kind: KindExtraction,
		Name: doc.Name,
		Err:  fmt.Errorf("primary: %v; fallback: %w", primaryErr, fallbackErr),
	}
}

func pdfTextPrimary(raw []byte) (string, error) {
	doc, err := fitz.NewFromMemory(raw)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

// pdfTextFallback reads the text layer page by page. Pages that yield no text
// contribute empty segments instead of failing the whole document.
func pdfTextFallback(raw []byte) (text string, err error) {
	// The fallback reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

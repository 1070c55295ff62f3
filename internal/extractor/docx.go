package extractor

import (
	"bytes"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/axondendriteplus/legaltrans/internal/document"
)

// extractDocx concatenates the text of every paragraph, joined by single
// spaces and in document order. Tables, headers, and styling are ignored.
func (e *Extractor) extractDocx(doc document.Document) (Result, error) {
	parsed, err := docx.Parse(bytes.NewReader(doc.Raw), int64(len(doc.Raw)))
	if err != nil {
		return Result{Method: MethodFailed}, &Error{
			Kind: KindExtraction,
			Name: doc.Name,
			Err:  err,
		}
	}

	var paragraphs []string
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paragraphs = append(paragraphs, paragraphText(para))
	}
	return Result{Text: strings.Join(paragraphs, " "), Method: MethodDirectDecode}, nil
}

func paragraphText(para *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return sb.String()
}

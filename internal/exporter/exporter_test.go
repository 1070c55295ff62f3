package exporter

import (
	"bytes"
	"testing"

	docx "github.com/fumiama/go-docx"
)

func TestToTxtBytes_RoundTrip(t *testing.T) {
	translation := "न्यायालय ने माना कि आदेश मनमाना और असंवैधानिक था।\n\nनिर्णय सुरक्षित है।"

	payload := ToTxtBytes(translation)
	if string(payload) != translation {
		t.Errorf("round trip mismatch: got %q", payload)
	}
}

func TestToTxtBytes_Deterministic(t *testing.T) {
	a := ToTxtBytes("अनुवाद")
	b := ToTxtBytes("अनुवाद")
	if !bytes.Equal(a, b) {
		t.Error("expected identical bytes for identical input")
	}
}

func TestSplitParagraphs(t *testing.T) {
	segments := SplitParagraphs("पहला\n\nदूसरा\n\nतीसरा")
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0] != "पहला" || segments[2] != "तीसरा" {
		t.Errorf("segments out of order: %v", segments)
	}
}

func TestSplitParagraphs_NoBlankLines(t *testing.T) {
	segments := SplitParagraphs("एक ही अनुच्छेद\nएक ही पंक्ति विराम")
	if len(segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(segments))
	}
}

func TestToDocxBytes_ParagraphPerSegment(t *testing.T) {
	text := "पहला अनुच्छेद\n\nदूसरा अनुच्छेद\n\nतीसरा अनुच्छेद"
	want := len(SplitParagraphs(text))

	payload, err := ToDocxBytes(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := docx.Parse(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("failed to parse generated docx: %v", err)
	}

	var paragraphs int
	for _, item := range parsed.Document.Body.Items {
		if _, ok := item.(*docx.Paragraph); ok {
			paragraphs++
		}
	}
	if paragraphs != want {
		t.Errorf("expected %d paragraphs, got %d", want, paragraphs)
	}
}

func TestToDocxBytes_PreservesSegmentText(t *testing.T) {
	payload, err := ToDocxBytes("अनुच्छेद एक\n\nअनुच्छेद दो")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := docx.Parse(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("failed to parse generated docx: %v", err)
	}

	var texts []string
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb bytes.Buffer
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if text, ok := rc.(*docx.Text); ok {
					sb.WriteString(text.Text)
				}
			}
		}
		texts = append(texts, sb.String())
	}

	if len(texts) != 2 || texts[0] != "अनुच्छेद एक" || texts[1] != "अनुच्छेद दो" {
		t.Errorf("unexpected paragraph texts: %v", texts)
	}
}

package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/axondendriteplus/legaltrans/internal/document"
	"github.com/axondendriteplus/legaltrans/internal/extractor"
	"github.com/axondendriteplus/legaltrans/internal/translator"
)

func txtDocument(t *testing.T, name, text string) document.Document {
	t.Helper()
	doc, err := document.New(name, []byte(text))
	if err != nil {
		t.Fatalf("failed to build document: %v", err)
	}
	return doc
}

// translationServer answers /translate with a fixed translation until failures
// is exhausted, returning 500s first.
func translationServer(t *testing.T, translation string, failures int) *httptest.Server {
	t.Helper()
	var remaining atomic.Int32
	remaining.Store(int32(failures))
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if remaining.Add(-1) >= 0 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"model crashed"}`))
			return
		}
		switch r.URL.Path {
		case "/translate":
			json.NewEncoder(w).Encode(map[string]any{
				"translation": translation,
				"model_info":  map[string]any{"device": "cpu"},
			})
		case "/translate/file":
			json.NewEncoder(w).Encode(map[string]any{
				"translation":   translation,
				"original_text": "original from server",
				"model_info":    map[string]any{"device": "cpu"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSession_StartsIdle(t *testing.T) {
	if state := NewSession().State(); state != StateIdle {
		t.Errorf("expected idle, got %s", state)
	}
}

func TestSession_UploadTransitionsToExtracted(t *testing.T) {
	session := NewSession()
	session.Upload(txtDocument(t, "order.txt", "The court held."), extractor.New(nil))

	if session.State() != StateExtracted {
		t.Errorf("expected extracted, got %s", session.State())
	}
	if session.ExtractedText() != "The court held." {
		t.Errorf("unexpected extracted text %q", session.ExtractedText())
	}
	if session.ExtractionWarning() != nil {
		t.Errorf("unexpected warning: %v", session.ExtractionWarning())
	}
}

func TestSession_UploadFailedExtractionStillExtracted(t *testing.T) {
	doc, err := document.New("broken.txt", []byte{0xff, 0xfe})
	if err != nil {
		t.Fatalf("failed to build document: %v", err)
	}

	session := NewSession()
	session.Upload(doc, extractor.New(nil))

	if session.State() != StateExtracted {
		t.Errorf("expected extracted even on extraction failure, got %s", session.State())
	}
	if session.ExtractedText() != "" {
		t.Errorf("expected empty text, got %q", session.ExtractedText())
	}
	if session.ExtractionWarning() == nil {
		t.Error("expected a recorded extraction warning")
	}
	if session.ExtractionMethod() != extractor.MethodFailed {
		t.Errorf("expected failure marker, got %s", session.ExtractionMethod())
	}
}

func TestSession_TranslateFromIdleRejected(t *testing.T) {
	session := NewSession()
	_, err := session.Translate(context.Background(), translator.New("http://localhost:1", nil), translator.DefaultParams())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected invalid transition error, got %v", err)
	}
}

func TestSession_TranslateSuccess(t *testing.T) {
	server := translationServer(t, "न्यायालय ने माना।", 0)
	defer server.Close()

	session := NewSession()
	session.Upload(txtDocument(t, "order.txt", "The court held."), extractor.New(nil))

	result, err := session.Translate(context.Background(), translator.New(server.URL, nil), translator.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.State() != StateTranslated {
		t.Errorf("expected translated, got %s", session.State())
	}
	if result.Translation != "न्यायालय ने माना।" {
		t.Errorf("unexpected translation %q", result.Translation)
	}
	if stored, ok := session.Translation(); !ok || stored != result {
		t.Error("expected the session to retain the result")
	}
}

func TestSession_TranslateFailureThenExplicitRetry(t *testing.T) {
	server := translationServer(t, "अनुवाद", 1)
	defer server.Close()

	client := translator.New(server.URL, nil)
	session := NewSession()
	session.Upload(txtDocument(t, "order.txt", "The court held."), extractor.New(nil))

	_, err := session.Translate(context.Background(), client, translator.DefaultParams())
	if err == nil {
		t.Fatal("expected first attempt to fail")
	}
	if session.State() != StateFailed {
		t.Errorf("expected failed, got %s", session.State())
	}
	if session.FailureReason() == "" {
		t.Error("expected a recorded failure reason")
	}
	if _, ok := session.Translation(); ok {
		t.Error("expected no retained result after failure")
	}

	// Export is not reachable from Failed.
	if _, _, err := session.Export(document.ExtTxt); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected invalid transition error, got %v", err)
	}

	// Retry is an explicit second Translate call.
	result, err := session.Translate(context.Background(), client, translator.DefaultParams())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if session.State() != StateTranslated {
		t.Errorf("expected translated after retry, got %s", session.State())
	}
	if result.Translation != "अनुवाद" {
		t.Errorf("unexpected translation %q", result.Translation)
	}
	if session.FailureReason() != "" {
		t.Error("expected failure reason cleared after successful retry")
	}
}

func TestSession_ExportIdempotent(t *testing.T) {
	server := translationServer(t, "पहला\n\nदूसरा", 0)
	defer server.Close()

	session := NewSession()
	session.Upload(txtDocument(t, "writ.txt", "First\n\nSecond"), extractor.New(nil))
	if _, err := session.Translate(context.Background(), translator.New(server.URL, nil), translator.DefaultParams()); err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	first, name, err := session.Export(document.ExtTxt)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if session.State() != StateExported {
		t.Errorf("expected exported, got %s", session.State())
	}
	if name != "translated_writ.txt" {
		t.Errorf("unexpected artifact name %q", name)
	}

	second, _, err := session.Export(document.ExtTxt)
	if err != nil {
		t.Fatalf("repeated export failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected repeated export to produce identical bytes")
	}
}

func TestSession_ExportDocx(t *testing.T) {
	server := translationServer(t, "पहला\n\nदूसरा", 0)
	defer server.Close()

	session := NewSession()
	session.Upload(txtDocument(t, "writ.txt", "First\n\nSecond"), extractor.New(nil))
	if _, err := session.Translate(context.Background(), translator.New(server.URL, nil), translator.DefaultParams()); err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	payload, name, err := session.Export(document.ExtDocx)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(payload) == 0 {
		t.Error("expected non-empty docx payload")
	}
	if name != "translated_writ.docx" {
		t.Errorf("unexpected artifact name %q", name)
	}
}

func TestSession_UploadResetsEverything(t *testing.T) {
	server := translationServer(t, "अनुवाद", 0)
	defer server.Close()

	session := NewSession()
	session.Upload(txtDocument(t, "first.txt", "First document."), extractor.New(nil))
	if _, err := session.Translate(context.Background(), translator.New(server.URL, nil), translator.DefaultParams()); err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	session.Upload(txtDocument(t, "second.txt", "Second document."), extractor.New(nil))

	if session.State() != StateExtracted {
		t.Errorf("expected extracted after new upload, got %s", session.State())
	}
	if session.Document().Name != "second.txt" {
		t.Errorf("expected second document active, got %q", session.Document().Name)
	}
	if _, ok := session.Translation(); ok {
		t.Error("expected prior translation discarded on new upload")
	}
}

func TestSession_TranslateRemote(t *testing.T) {
	server := translationServer(t, "दूरस्थ अनुवाद", 0)
	defer server.Close()

	session := NewSession()
	session.Upload(txtDocument(t, "deed.txt", "The deed is registered."), extractor.New(nil))

	result, err := session.TranslateRemote(context.Background(), translator.New(server.URL, nil), translator.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Translation != "दूरस्थ अनुवाद" {
		t.Errorf("unexpected translation %q", result.Translation)
	}
	if session.OriginalText() != "original from server" {
		t.Errorf("expected server-extracted original retained, got %q", session.OriginalText())
	}
	if session.State() != StateTranslated {
		t.Errorf("expected translated, got %s", session.State())
	}
}

func TestSession_BlankExtractionTranslatesToPrompt(t *testing.T) {
	// A document that degraded to empty text still translates, but the client
	// short-circuits with the canned prompt and never touches the network.
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	doc, err := document.New("broken.txt", []byte{0xff})
	if err != nil {
		t.Fatalf("failed to build document: %v", err)
	}

	session := NewSession()
	session.Upload(doc, extractor.New(nil))

	result, err := session.Translate(context.Background(), translator.New(server.URL, nil), translator.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Translation != translator.EmptyInputPrompt {
		t.Errorf("expected canned prompt, got %q", result.Translation)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no network calls, got %d", calls.Load())
	}
}

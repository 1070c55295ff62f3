package store

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(DefaultDSN)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHistory_Empty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestSaveAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.SaveDocument(ctx, DocumentRecord{
		ID:               "doc-1",
		Name:             "order.pdf",
		Ext:              "pdf",
		SizeBytes:        2048,
		ExtractionMethod: "fallback",
	})
	if err != nil {
		t.Fatalf("failed to save document: %v", err)
	}

	err = s.SaveAttempt(ctx, AttemptRecord{
		ID:         "att-1",
		DocumentID: "doc-1",
		Status:     "failed",
		Error:      "timeout error",
	})
	if err != nil {
		t.Fatalf("failed to save attempt: %v", err)
	}

	err = s.SaveAttempt(ctx, AttemptRecord{
		ID:          "att-2",
		DocumentID:  "doc-1",
		Status:      "translated",
		Translation: "  न्यायालय ने माना।  ",
		Device:      "cuda",
		ElapsedMs:   4200,
	})
	if err != nil {
		t.Fatalf("failed to save attempt: %v", err)
	}

	entries, err := s.History(ctx)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first, second := entries[0], entries[1]
	if first.Status != "failed" || first.Error != "timeout error" {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if second.Status != "translated" || second.Device != "cuda" || second.ElapsedMs != 4200 {
		t.Errorf("unexpected second entry: %+v", second)
	}
	if first.DocumentName != "order.pdf" || first.ExtractionMethod != "fallback" {
		t.Errorf("expected document fields joined in, got %+v", first)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveDocument(ctx, DocumentRecord{ID: "doc-1", Name: "a.txt", Ext: "txt"}); err != nil {
		t.Fatalf("failed to save document: %v", err)
	}
	if err := s.SaveAttempt(ctx, AttemptRecord{ID: "att-1", DocumentID: "doc-1", Status: "translated"}); err != nil {
		t.Fatalf("failed to save attempt: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}

	entries, err := s.History(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d entries", len(entries))
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  अनुवाद  "); got != "अनुवाद" {
		t.Errorf("expected trimmed NFC text, got %q", got)
	}
}

// Package workflow tracks a single document's translation life cycle within
// one user session: uploaded → extracted → translating → translated/failed →
// exported. The Session value is owned and threaded by the caller; there is no
// ambient store, and each concurrent user gets an independent Session.
package workflow

import (
	"context"
	"fmt"

	"github.com/axondendriteplus/legaltrans/internal/document"
	"github.com/axondendriteplus/legaltrans/internal/exporter"
	"github.com/axondendriteplus/legaltrans/internal/extractor"
	"github.com/axondendriteplus/legaltrans/internal/translator"
)

// State is the life-cycle stage of the active document.
type State string

const (
	StateIdle        State = "idle"
	StateExtracted   State = "extracted"
	StateTranslating State = "translating"
	StateTranslated  State = "translated"
	StateFailed      State = "failed"
	StateExported    State = "exported"
)

// ErrInvalidTransition is wrapped by errors returned for out-of-order actions.
var ErrInvalidTransition = fmt.Errorf("invalid workflow transition")

// Session is the state machine for one active document. It is not safe for
// concurrent use; a session belongs to exactly one interaction loop.
type Session struct {
	state        State
	doc          document.Document
	extracted    extractor.Result
	extractWarn  error
	result       *translator.Result
	originalText string
	failReason   string
}

// NewSession starts an idle session with no document.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// State returns the current life-cycle stage.
func (s *Session) State() State { return s.state }

// Document returns the active document.
func (s *Session) Document() document.Document { return s.doc }

// ExtractedText returns the text obtained from the active document, possibly
// empty when extraction degraded.
func (s *Session) ExtractedText() string { return s.extracted.Text }

// ExtractionMethod reports which strategy produced the extracted text.
func (s *Session) ExtractionMethod() extractor.Method { return s.extracted.Method }

// ExtractionWarning returns the non-fatal extraction error, if any. The
// session proceeded with empty text regardless.
func (s *Session) ExtractionWarning() error { return s.extractWarn }

// Translation returns the completed translation result, if one exists.
func (s *Session) Translation() (*translator.Result, bool) {
	return s.result, s.result != nil
}

// OriginalText returns the server-extracted source text from a remote file
// translation, when available.
func (s *Session) OriginalText() string { return s.originalText }

// FailureReason describes why the last translation attempt failed.
func (s *Session) FailureReason() string { return s.failReason }

// Upload installs a new document, discarding all prior progress, and runs
// extraction. The session always lands in Extracted: extraction failure
// carries empty text plus a warning, never an aborted upload.
func (s *Session) Upload(doc document.Document, ex *extractor.Extractor) {
	res, err := ex.Extract(doc)
	*s = Session{
		state:       StateExtracted,
		doc:         doc,
		extracted:   res,
		extractWarn: err,
	}
}

// Translate sends the extracted text to the API and advances the session to
// Translated or Failed. Allowed from Extracted, or from Failed for an explicit
// user-triggered retry. Blank extracted text never reaches the network; the
// client substitutes the canned prompt locally.
func (s *Session) Translate(ctx context.Context, client *translator.Client, p translator.Params) (*translator.Result, error) {
	if s.state != StateExtracted && s.state != StateFailed {
		return nil, fmt.Errorf("%w: translate from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateTranslating

	res, err := client.TranslateText(ctx, s.extracted.Text, p)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.complete(res, "")
	return res, nil
}

// TranslateRemote ships the raw document to the API's file endpoint instead of
// translating locally extracted text. Same transitions as Translate.
func (s *Session) TranslateRemote(ctx context.Context, client *translator.Client, p translator.Params) (*translator.Result, error) {
	if s.state != StateExtracted && s.state != StateFailed {
		return nil, fmt.Errorf("%w: translate from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateTranslating

	res, err := client.TranslateFile(ctx, s.doc, p)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	result := &translator.Result{
		Translation: res.Translation,
		ModelInfo:   res.ModelInfo,
		Elapsed:     res.Elapsed,
	}
	s.complete(result, res.OriginalText)
	return result, nil
}

func (s *Session) fail(err error) {
	s.state = StateFailed
	s.failReason = err.Error()
	s.result = nil
}

func (s *Session) complete(res *translator.Result, originalText string) {
	s.state = StateTranslated
	s.result = res
	s.originalText = originalText
	s.failReason = ""
}

// Export serializes the translation as a download payload and returns it with
// its conventional file name. Repeating the export is allowed and yields the
// same bytes.
func (s *Session) Export(ext document.Extension) ([]byte, string, error) {
	if s.state != StateTranslated && s.state != StateExported {
		return nil, "", fmt.Errorf("%w: export from %s", ErrInvalidTransition, s.state)
	}

	var payload []byte
	switch ext {
	case document.ExtTxt:
		payload = exporter.ToTxtBytes(s.result.Translation)
	case document.ExtDocx:
		var err error
		payload, err = exporter.ToDocxBytes(s.result.Translation)
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", ext)
	}

	s.state = StateExported
	return payload, document.TranslatedName(s.doc.Stem(), ext), nil
}

// Package translator is the client for the remote legal-translation API
// (LegalLoRA-IndicTrans2 model server, eng_Latn → hin_Deva). All calls are
// synchronous and bounded by per-operation deadlines; failures come back as
// tagged *Error values that the boundary renders as Hindi messages.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/axondendriteplus/legaltrans/internal/document"
)

const (
	// DefaultBaseURL is used when no API URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	healthTimeout = 5 * time.Second
	// Text translations of long legal passages can take minutes on CPU.
	textTimeout = 300 * time.Second
	// The file path covers server-side extraction plus translation.
	fileTimeout = 600 * time.Second
)

// Params are the generation parameters accepted by the model server.
type Params struct {
	MaxLength   int
	DoSample    bool
	Temperature float64
	NumBeams    int
}

// DefaultParams mirrors the server defaults.
func DefaultParams() Params {
	return Params{MaxLength: 512, DoSample: false, Temperature: 0.7, NumBeams: 5}
}

// Normalize clamps each parameter into the range the server accepts.
func (p Params) Normalize() Params {
	if p.MaxLength < 100 {
		p.MaxLength = 100
	}
	if p.MaxLength > 1024 {
		p.MaxLength = 1024
	}
	if p.Temperature < 0.1 {
		p.Temperature = 0.1
	}
	if p.Temperature > 1.5 {
		p.Temperature = 1.5
	}
	if p.NumBeams < 1 {
		p.NumBeams = 1
	}
	if p.NumBeams > 10 {
		p.NumBeams = 10
	}
	return p
}

// HealthStatus reports whether the model server is reachable and which compute
// device it is running on.
type HealthStatus struct {
	Available bool
	Device    string
}

// Result is a completed text translation.
type Result struct {
	Translation string
	ModelInfo   map[string]any
	Elapsed     time.Duration
}

// FileResult is a completed whole-file translation, including the text the
// server extracted from the uploaded document.
type FileResult struct {
	Translation  string
	OriginalText string
	ModelInfo    map[string]any
	Elapsed      time.Duration
}

// Client talks to one translation API instance. The base URL is fixed at
// construction; build a new Client to point a session elsewhere.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// New creates a Client for the API at baseURL.
func New(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Deadlines are set per call; the shared client carries none.
		client: &http.Client{},
		logger: logger,
	}
}

// BaseURL returns the configured API URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health checks the model server. Any failure yields Available=false together
// with the classified error; the caller decides how loudly to report it.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &HealthStatus{}, &Error{Kind: KindConnection, cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &HealthStatus{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HealthStatus{}, httpError(resp)
	}

	var payload struct {
		Device string `json:"device"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &HealthStatus{}, &Error{Kind: KindMalformed, cause: err}
	}
	return &HealthStatus{Available: true, Device: payload.Device}, nil
}

// TranslateText translates a single piece of English legal text to Hindi.
// Empty or whitespace-only input short-circuits locally with the canned Hindi
// prompt; no request is issued.
func (c *Client) TranslateText(ctx context.Context, text string, p Params) (*Result, error) {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		return &Result{Translation: EmptyInputPrompt, Elapsed: time.Since(start)}, nil
	}

	p = p.Normalize()
	payload := map[string]any{
		"text":        text,
		"max_length":  p.MaxLength,
		"do_sample":   p.DoSample,
		"temperature": p.Temperature,
		"num_beams":   p.NumBeams,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("marshal request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, textTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindConnection, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending translation request",
		zap.Int("chars", len(text)),
		zap.Int("max_length", p.MaxLength),
		zap.Int("num_beams", p.NumBeams))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError(resp)
	}

	var out struct {
		Translation *string        `json:"translation"`
		ModelInfo   map[string]any `json:"model_info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Kind: KindMalformed, cause: err}
	}
	if out.Translation == nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("response missing translation field")}
	}

	return &Result{
		Translation: *out.Translation,
		ModelInfo:   out.ModelInfo,
		Elapsed:     time.Since(start),
	}, nil
}

// TranslateFile ships the raw document to the server, which extracts and
// translates it in one round trip.
func (c *Client) TranslateFile(ctx context.Context, doc document.Document, p Params) (*FileResult, error) {
	start := time.Now()
	p = p.Normalize()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, doc.Name))
	header.Set("Content-Type", doc.MIMEType)
	part, err := form.CreatePart(header)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("build form: %w", err)}
	}
	if _, err := part.Write(doc.Raw); err != nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("build form: %w", err)}
	}

	fields := map[string]string{
		"max_length":  strconv.Itoa(p.MaxLength),
		"do_sample":   strconv.FormatBool(p.DoSample),
		"temperature": strconv.FormatFloat(p.Temperature, 'f', -1, 64),
		"num_beams":   strconv.Itoa(p.NumBeams),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("build form: %w", err)}
		}
	}
	if err := form.Close(); err != nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("build form: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, fileTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate/file", &buf)
	if err != nil {
		return nil, &Error{Kind: KindConnection, cause: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	c.logger.Debug("sending file translation request",
		zap.String("file", doc.Name),
		zap.Int("bytes", len(doc.Raw)))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError(resp)
	}

	var out struct {
		Translation  *string        `json:"translation"`
		OriginalText string         `json:"original_text"`
		ModelInfo    map[string]any `json:"model_info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Kind: KindMalformed, cause: err}
	}
	if out.Translation == nil {
		return nil, &Error{Kind: KindMalformed, cause: fmt.Errorf("response missing translation field")}
	}

	return &FileResult{
		Translation:  *out.Translation,
		OriginalText: out.OriginalText,
		ModelInfo:    out.ModelInfo,
		Elapsed:      time.Since(start),
	}, nil
}

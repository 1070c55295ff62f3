package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Kind classifies a failed call against the translation API.
type Kind string

const (
	// KindConnection is a transport-level refusal (server unreachable).
	KindConnection Kind = "connection"
	// KindTimeout means the call's deadline was exceeded.
	KindTimeout Kind = "timeout"
	// KindHTTP is a non-200 response from the server.
	KindHTTP Kind = "http"
	// KindMalformed is a 200 response missing the expected fields.
	KindMalformed Kind = "malformed"
)

// Error is a tagged translation-API failure. Callers branch on Kind instead of
// matching error strings; Message renders the user-facing Hindi text.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	cause      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Detail != "" {
			return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	case KindMalformed:
		return fmt.Sprintf("malformed API response: %v", e.cause)
	default:
		return fmt.Sprintf("%s error: %v", e.Kind, e.cause)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// classifyTransport maps a failed http.Client.Do into the error taxonomy.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, cause: err}
	}
	return &Error{Kind: KindConnection, cause: err}
}

// httpError builds the error for a non-200 response, pulling the detail field
// out of a JSON body when the server sent one.
func httpError(resp *http.Response) *Error {
	e := &Error{Kind: KindHTTP, StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return e
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
		e.Detail = payload.Detail
	}
	return e
}

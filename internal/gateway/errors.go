package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PageError is one entry of a list-shaped error body.
type PageError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// ErrorBody is the structured part of a failed gateway response. Raw keeps
// the undecoded payload.
type ErrorBody struct {
	Message    string          `json:"message,omitempty"`
	PageErrors []PageError     `json:"pageErrors,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// Error is a failed validation call that carries either a structured body,
// a plain message, or both.
type Error struct {
	Gateway    string
	StatusCode int
	Body       *ErrorBody
	Message    string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Body != nil && e.Body.Message != "":
		return e.Body.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("%s gateway error: status=%d", e.Gateway, e.StatusCode)
	default:
		return fmt.Sprintf("%s gateway error", e.Gateway)
	}
}

// Retryable reports whether another provider might answer where this one
// could not.
func (e *Error) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

// ParseErrorBody decodes an error payload. Objects may carry message and
// pageErrors; arrays of {message} entries are treated as page errors. SendGrid
// style {"errors":[...]} bodies are folded into page errors as well.
func ParseErrorBody(raw string) *ErrorBody {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	body := &ErrorBody{Raw: json.RawMessage(raw)}

	if strings.HasPrefix(raw, "[") {
		_ = json.Unmarshal([]byte(raw), &body.PageErrors)
		return body
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		if !json.Valid([]byte(raw)) {
			body.Raw = nil
			body.Message = raw
		}
		return body
	}

	// each field decodes on its own so a malformed sibling keeps the rest
	_ = json.Unmarshal(fields["message"], &body.Message)
	_ = json.Unmarshal(fields["pageErrors"], &body.PageErrors)
	if len(body.PageErrors) == 0 {
		body.PageErrors = nil
		_ = json.Unmarshal(fields["errors"], &body.PageErrors)
	}
	return body
}

package session

import (
	"errors"
	"strings"

	"github.com/cruxstack/email-validator-view-go/internal/gateway"
)

// FallbackMessage is shown when a failure carries nothing readable.
const FallbackMessage = "An error occurred during validation. Check the service logs for details."

// Message turns a gateway failure into the text shown to the user. The body
// message wins, then the first page error, then the error's own message, then
// the raw body, then FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			return msg
		}
		return FallbackMessage
	}

	if b := gerr.Body; b != nil {
		if b.Message != "" {
			return b.Message
		}
		if len(b.PageErrors) > 0 && b.PageErrors[0].Message != "" {
			return b.PageErrors[0].Message
		}
	}

	if gerr.Message != "" {
		return gerr.Message
	}

	if gerr.Body != nil && len(gerr.Body.Raw) > 0 {
		return string(gerr.Body.Raw)
	}

	return FallbackMessage
}

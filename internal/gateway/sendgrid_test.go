package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

func newSendGridServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sendGridValidationPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["email"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSendGridGateway_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		response SendGridValidationResponse
		expected types.ValidationResult
	}{
		{
			name:  "valid email",
			email: "valid@example.com",
			response: SendGridValidationResponse{Result: SendGridValidationResult{
				Verdict: "Valid",
				Score:   0.95,
				Checks: SendGridValidationChecks{
					Domain: SendGridDomainChecks{HasValidAddressSyntax: true, HasMXOrARecord: true},
				},
			}},
			expected: types.ValidationResult{
				Status: types.StatusValid, IsValid: true, SyntaxValid: true,
				DomainExists: true, HasMxRecord: true, MailboxExists: true,
			},
		},
		{
			name:  "invalid email",
			email: "invalid@example.com",
			response: SendGridValidationResponse{Result: SendGridValidationResult{
				Verdict: "Invalid",
				Score:   0.1,
				Checks: SendGridValidationChecks{
					Domain: SendGridDomainChecks{HasValidAddressSyntax: true},
				},
			}},
			expected: types.ValidationResult{Status: types.StatusInvalid, SyntaxValid: true},
		},
		{
			name:  "risky disposable role address",
			email: "admin@mailinator.com",
			response: SendGridValidationResponse{Result: SendGridValidationResult{
				Verdict: "Risky",
				Score:   0.5,
				Checks: SendGridValidationChecks{
					Domain:     SendGridDomainChecks{HasValidAddressSyntax: true, HasMXOrARecord: true, IsSuspectedDisposableAddress: true},
					LocalPart:  SendGridLocalPartChecks{IsSuspectedRoleAddress: true},
					Additional: SendGridAdditionalChecks{HasSuspectedBounces: true},
				},
			}},
			expected: types.ValidationResult{
				Status: types.StatusValid, IsValid: true, SyntaxValid: true,
				DomainExists: true, HasMxRecord: true, MailboxExists: false,
				IsDisposable: true, IsRoleBased: true,
			},
		},
		{
			name:  "typo suggestion",
			email: "user@gmial.com",
			response: SendGridValidationResponse{Result: SendGridValidationResult{
				Verdict:    "Risky",
				Local:      "user",
				Suggestion: "gmail.com",
				Checks: SendGridValidationChecks{
					Domain: SendGridDomainChecks{HasValidAddressSyntax: true},
				},
			}},
			expected: types.ValidationResult{
				Status: types.StatusValid, IsValid: true, SyntaxValid: true,
				MailboxExists: true, Suggestion: "user@gmail.com",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newSendGridServer(t, http.StatusOK, tc.response)
			g := &SendGridGateway{APIHost: server.URL, APIKey: "test-api-key"}

			result, err := g.Validate(context.Background(), tc.email)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *result)
		})
	}
}

func TestSendGridGateway_ErrorResponse(t *testing.T) {
	server := newSendGridServer(t, http.StatusTooManyRequests, map[string]any{
		"errors": []map[string]any{{"field": nil, "message": "rate limited"}},
	})
	g := &SendGridGateway{APIHost: server.URL, APIKey: "test-api-key"}

	_, err := g.Validate(context.Background(), "user@example.com")
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusTooManyRequests, gerr.StatusCode)
	require.NotNil(t, gerr.Body)
	require.Len(t, gerr.Body.PageErrors, 1)
	assert.Equal(t, "rate limited", gerr.Body.PageErrors[0].Message)
	assert.True(t, gerr.Retryable())
}

func TestFromSendGrid_SuggestionWithoutLocal(t *testing.T) {
	r := fromSendGrid("jane.doe@yaho.com", SendGridValidationResult{Verdict: "Risky", Suggestion: "yahoo.com"})
	assert.Equal(t, "jane.doe@yahoo.com", r.Suggestion)

	r = fromSendGrid("jane.doe@yaho.com", SendGridValidationResult{Verdict: "Risky", Suggestion: "jane@yahoo.com"})
	assert.Equal(t, "jane@yahoo.com", r.Suggestion)
}

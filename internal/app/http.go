package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// HandleHTTP serves API Gateway v2 HTTP events. Validation failures are part
// of a 200 response; only malformed requests get an error status.
func (a *App) HandleHTTP(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if method := event.RequestContext.HTTP.Method; method != "" && method != http.MethodPost {
		return errorResponse(http.StatusMethodNotAllowed, "method not allowed"), nil
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return errorResponse(http.StatusBadRequest, "invalid base64 body"), nil
		}
		body = decoded
	}

	var req types.ValidationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.DebugContext(ctx, "rejecting malformed request", "error", err)
		return errorResponse(http.StatusBadRequest, "invalid request body"), nil
	}

	resp := a.Handle(ctx, req)

	out, err := json.Marshal(resp)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal response", "error", err)
		return errorResponse(http.StatusInternalServerError, "internal error"), nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers:    jsonHeaders,
		Body:       string(out),
	}, nil
}

func errorResponse(status int, message string) events.APIGatewayV2HTTPResponse {
	out, _ := json.Marshal(map[string]string{"message": message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(out),
	}
}

// Package event adapts AWS Lambda invocations (API Gateway proxy events or
// direct invokes) to the subscription workflow.
package event

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ignite/newsletter-subscriber/internal/envelope"
	"github.com/ignite/newsletter-subscriber/internal/pkg/logger"
	"github.com/ignite/newsletter-subscriber/internal/service/subscription"
)

// responseHeaders are returned on every response.
var responseHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Handler serves subscription events.
type Handler struct {
	subscriptions *subscription.Service
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *subscription.Service) *Handler {
	return &Handler{subscriptions: svc}
}

// Handle processes one invocation. The payload is either an envelope with a
// "body" field (a JSON string or an object) or the request body itself.
// Faults are always reported through the response, never as a returned
// error, so the caller sees a structured 500.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error handling event", "error", fmt.Sprint(r))
			resp = respond(envelope.Internal())
			err = nil
		}
	}()

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return respond(envelope.FromResult(h.subscriptions.Reject(subscription.ErrMalformedBody))), nil
	}

	return respond(envelope.FromResult(h.dispatch(ctx, payload))), nil
}

func (h *Handler) dispatch(ctx context.Context, payload any) subscription.Result {
	obj, ok := payload.(map[string]any)
	if !ok {
		return h.subscriptions.SubscribePayload(ctx, payload)
	}
	body, ok := obj["body"]
	if !ok {
		return h.subscriptions.SubscribePayload(ctx, payload)
	}

	switch b := body.(type) {
	case nil:
		return h.subscriptions.Reject(subscription.ErrBodyRequired)
	case string:
		data := []byte(b)
		if encoded, _ := obj["isBase64Encoded"].(bool); encoded {
			decoded, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return h.subscriptions.Reject(subscription.ErrMalformedBody)
			}
			data = decoded
		}
		return h.subscriptions.SubscribeJSON(ctx, data)
	default:
		return h.subscriptions.SubscribePayload(ctx, b)
	}
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to encode event response", "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"` + envelope.MsgInternalError + `"}`)
	}

	headers := make(map[string]string, len(responseHeaders))
	for k, v := range responseHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(data),
	}
}

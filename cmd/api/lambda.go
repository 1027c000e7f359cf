package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

const requestIDHeader = "X-Request-Id"

// lambdaHandler serves API Gateway HTTP API (payload v2) events through h, so
// the Lambda deployment shares the router and middleware with the local
// server. The gateway request id is forwarded as X-Request-Id unless the
// caller already sent one.
func lambdaHandler(h http.Handler) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	adapter := httpadapter.NewV2(h)
	return func(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		if id := ev.RequestContext.RequestID; id != "" && !hasHeader(ev.Headers, requestIDHeader) {
			headers := make(map[string]string, len(ev.Headers)+1)
			for k, v := range ev.Headers {
				headers[k] = v
			}
			headers[strings.ToLower(requestIDHeader)] = id
			ev.Headers = headers
		}
		return adapter.ProxyWithContext(ctx, ev)
	}
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

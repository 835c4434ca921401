package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"srtm-backend/internal/bootstrap"
	"srtm-backend/internal/shared/config"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/shared/telemetry"
)

var (
	initOnce  sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2
)

// The catalog and repositories are built once per container and reused
// across warm invocations.
func initApp() {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		initErr = err
		return
	}
	ginLambda = ginadapter.NewV2(app.Router)
}

func failure(code, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{Code: code, Message: message}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": initErr.Error()})
		return failure("bootstrap_failed", "service failed to start"), initErr
	}
	if ginLambda == nil {
		return failure("router_unavailable", "router not initialized"), nil
	}
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/i474232898/geo-window-export/internal/app"
	"github.com/i474232898/geo-window-export/internal/config"
	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/logging"
)

type exportHandler interface {
	Handle(ctx context.Context, req geo.Request) geo.Response
}

func handler(exporter exportHandler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp := exporter.Handle(ctx, geo.Request{
			Method: event.HTTPMethod,
			Params: event.QueryStringParameters,
		})

		return events.APIGatewayProxyResponse{
			StatusCode: 200,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Collaborators are built once per container and reused across invocations.
	exporter, err := app.NewExporter(context.Background(), cfg, zlog, nil)
	if err != nil {
		zlog.Fatal("failed to build exporter", zap.Error(err))
	}

	lambda.Start(handler(exporter))
}

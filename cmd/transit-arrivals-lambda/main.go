package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/transit-arrivals/aggregator"
	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/formatter"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
	"github.com/theoremus-urban-solutions/transit-arrivals/server"
)

// Presenter answers API Gateway proxy requests.
type Presenter struct {
	Logger  *internal.Logger
	Service server.ArrivalsService
	Builder *formatter.ResponseBuilder
	Now     func() time.Time
}

func main() {
	logger := internal.NewLogger(
		internal.LoggerSetOutput(os.Stderr),
		internal.LoggerSetPrefix("transit-arrivals: "),
		internal.LoggerSetFlags(log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile),
		internal.LoggerSetDebug(os.Getenv("DEBUG") != ""),
	)

	cfg, source, err := config.LoadOrDefault(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	logger.Debugf("configuration loaded from %s", source)

	p := &Presenter{
		Logger:  logger,
		Service: aggregator.FromConfig(cfg, aggregator.WithLogger(logger)),
		Builder: formatter.NewResponseBuilder(),
		Now:     time.Now,
	}

	lambda.Start(p.Handler)
}

// Handler serves /health and, for every other path, the arrivals payload.
func (p *Presenter) Handler(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	p.Logger.Debugf("Handler %s %s", request.HTTPMethod, request.Path)

	if request.Path == "/health" {
		return p.respond(http.StatusOK, formatter.NewHealthResponse(p.Now()))
	}

	res, err := p.Service.GetAllArrivals(ctx)
	if err != nil {
		p.Logger.Printf("%v", errors.Wrap(err, "could not aggregate arrivals"))
		return p.respond(http.StatusInternalServerError, formatter.ErrorResponse{Error: "Failed to fetch arrival data"})
	}
	return p.respond(http.StatusOK, formatter.BuildPayload(res))
}

func (p *Presenter) respond(status int, v any) (*events.APIGatewayProxyResponse, error) {
	body, err := p.Builder.BuildJSON(v)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal response")
	}
	return &events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

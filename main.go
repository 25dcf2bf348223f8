package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/stevens-blueprint/weekly-metrics/cmd"
	"github.com/stevens-blueprint/weekly-metrics/internal/runner"
)

const configPath = "config.json"

func main() {
	// The same binary runs as the Lambda handler in deployment and as a CLI
	// locally.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(handle)
		return
	}
	cmd.Execute()
}

// handle is the Lambda entry point. It never returns an error to the
// runtime; every failure is folded into the structured response.
func handle(ctx context.Context) (runner.Response, error) {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	run, err := runner.Setup(ctx, configPath, false, logger)
	if err != nil {
		logger.Printf("An error occurred during setup: %v", err)
		body, marshalErr := json.Marshal(map[string]string{
			"message": "An error occurred",
			"error":   err.Error(),
		})
		if marshalErr != nil {
			body = []byte(`{"message":"An error occurred"}`)
		}
		return runner.Response{StatusCode: http.StatusInternalServerError, Body: string(body)}, nil
	}
	return run.Run(ctx), nil
}

//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var (
	lambdaConfig Config
	lambdaLogger *zap.Logger
)

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	resp, err := handleSolve(ctx, body, lambdaConfig, lambdaLogger)
	if errors.Is(err, errBadRequest) {
		return errResp(400, err.Error())
	}
	if err != nil {
		lambdaLogger.Error("solve failed", zap.Error(err))
		return errResp(500, "internal error")
	}

	respJSON, err := json.Marshal(resp)
	if err != nil {
		return errResp(500, "internal error")
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		logger = zap.NewNop()
	}
	lambdaConfig, lambdaLogger = cfg, logger
	lambda.Start(handler)
}

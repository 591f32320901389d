package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/integration/common"
	pkgRetry "github.com/futig/storefront-ai/internal/pkg/retry"
	pkghttp "github.com/futig/storefront-ai/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var errEmptyResponse = errors.New("empty response from completion backend")

// Connector talks to Ollama's native generate endpoint
type Connector struct {
	config    config.CompletionConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.CompletionConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Complete sends a non-streaming generate request. Failures are reported in the result.
func (c *Connector) Complete(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult {
	model := modelName(req, c.config.Model)

	ctx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	body := &entity.OllamaGenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.OutputFormat == entity.OutputFormatJSON {
		body.Format = string(entity.OutputFormatJSON)
	}

	ctxzap.Info(ctx, "requesting completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", model),
		zap.String("format", string(req.OutputFormat)),
	)
	ctxzap.Debug(ctx, "completion prompt", zap.String("prompt", req.Prompt))

	var resp entity.OllamaGenerateResponse
	err := pkgRetry.Do(ctx, c.config.Retry, pkghttp.IsRetryable, func() error {
		resp = entity.OllamaGenerateResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, body, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "completion request failed",
			zap.String("purpose", string(req.Purpose)),
			zap.Error(err),
		)
		return entity.CompletionFailed(err)
	}

	return finish(ctx, req, resp.Response)
}

func finish(ctx context.Context, req *entity.CompletionRequest, text string) *entity.CompletionResult {
	if strings.TrimSpace(text) == "" {
		ctxzap.Warn(ctx, "completion backend returned empty output", zap.String("purpose", string(req.Purpose)))
		return entity.CompletionFailed(errEmptyResponse)
	}

	ctxzap.Debug(ctx, "completion output", zap.String("purpose", string(req.Purpose)), zap.String("output", text))
	ctxzap.Info(ctx, "completion received",
		zap.String("purpose", string(req.Purpose)),
		zap.Int("output_length", len(text)),
	)

	return entity.CompletionSucceeded(text)
}

func modelName(req *entity.CompletionRequest, fallback string) string {
	if req.ModelName != "" {
		return req.ModelName
	}
	return fallback
}

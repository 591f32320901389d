package completion

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/integration/common"
	pkgRetry "github.com/futig/storefront-ai/internal/pkg/retry"
	pkghttp "github.com/futig/storefront-ai/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConnector serves completions from any OpenAI-compatible chat endpoint
// (Ollama and llama.cpp expose one under /v1)
type OpenAIConnector struct {
	config config.CompletionConfig
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAIConnector(cfg config.CompletionConfig, logger *zap.Logger) *OpenAIConnector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.Url
	// Token auth is handled by the SDK; the shared client only contributes timeouts and logging
	httpCfg := cfg.HTTPClientConfig
	httpCfg.Token = ""
	clientCfg.HTTPClient = common.NewBaseConnector(httpCfg, logger).HTTPClient()

	return &OpenAIConnector{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

func (c *OpenAIConnector) Complete(ctx context.Context, req *entity.CompletionRequest) *entity.CompletionResult {
	model := modelName(req, c.config.Model)

	ctx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.OutputFormat == entity.OutputFormatJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("purpose", string(req.Purpose)),
		zap.String("model", model),
		zap.String("format", string(req.OutputFormat)),
	)
	ctxzap.Debug(ctx, "completion prompt", zap.String("prompt", req.Prompt))

	var resp openai.ChatCompletionResponse
	err := pkgRetry.Do(ctx, c.config.Retry, isRetryableOpenAI, func() error {
		var err error
		resp, err = c.client.CreateChatCompletion(ctx, chatReq)
		return err
	})
	if err != nil {
		ctxzap.Error(ctx, "chat completion request failed",
			zap.String("purpose", string(req.Purpose)),
			zap.Error(err),
		)
		return entity.CompletionFailed(err)
	}

	if len(resp.Choices) == 0 {
		return finish(ctx, req, "")
	}

	return finish(ctx, req, resp.Choices[0].Message.Content)
}

func isRetryableOpenAI(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return true
	}

	return pkghttp.IsRetryable(err)
}

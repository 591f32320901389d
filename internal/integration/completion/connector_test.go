package completion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/futig/storefront-ai/internal/config"
	"github.com/futig/storefront-ai/internal/entity"
	"github.com/futig/storefront-ai/internal/integration/completion"
	pkgRetry "github.com/futig/storefront-ai/internal/pkg/retry"
)

func testCompletionConfig(url string) config.CompletionConfig {
	return config.CompletionConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            url,
			RequestTimeout: 5 * time.Second,
		},
		Provider:         config.ProviderOllama,
		Model:            "tinyllama",
		GenerateEndpoint: "/api/generate",
		CallTimeout:      5 * time.Second,
		Retry:            pkgRetry.RetryConfig{Attempts: 1, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
}

var _ = Describe("Connector", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		calls    atomic.Int32
		lastBody entity.OllamaGenerateRequest
		cfg      config.CompletionConfig
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		calls.Store(0)
		lastBody = entity.OllamaGenerateRequest{}
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			json.NewDecoder(r.Body).Decode(&lastBody)
			handler(w, r)
		}))
		cfg = testCompletionConfig(server.URL)
	})

	AfterEach(func() {
		server.Close()
	})

	respond := func(text string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(entity.OllamaGenerateResponse{Model: "tinyllama", Response: text, Done: true})
		}
	}

	It("returns the generated text on success", func() {
		handler = respond("Hello shopper")

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{
			Prompt:       "say hi",
			OutputFormat: entity.OutputFormatText,
			Purpose:      entity.PurposeFreeform,
		})

		Expect(result.Succeeded).To(BeTrue())
		Expect(result.RawText).To(Equal("Hello shopper"))
		Expect(result.Err()).NotTo(HaveOccurred())
		Expect(lastBody.Model).To(Equal("tinyllama"))
		Expect(lastBody.Stream).To(BeFalse())
		Expect(lastBody.Format).To(BeEmpty())
	})

	It("requests JSON output and honours a model override", func() {
		handler = respond(`{"ok": true}`)

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{
			Prompt:       "json please",
			OutputFormat: entity.OutputFormatJSON,
			ModelName:    "llama3",
		})

		Expect(result.Succeeded).To(BeTrue())
		Expect(lastBody.Format).To(Equal("json"))
		Expect(lastBody.Model).To(Equal("llama3"))
	})

	It("reports backend errors as a failed result", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"model not found"}`))
		}

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{Prompt: "hi"})

		Expect(result.Succeeded).To(BeFalse())
		Expect(result.RawText).To(BeEmpty())
		Expect(result.ErrorDetail).To(ContainSubstring("model not found"))
		Expect(result.Err()).To(MatchError(entity.ErrCompletionFailed))
	})

	It("treats empty output as a failure", func() {
		handler = respond("   ")

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{Prompt: "hi"})

		Expect(result.Succeeded).To(BeFalse())
		Expect(result.ErrorDetail).NotTo(BeEmpty())
	})

	It("retries server errors up to the configured attempts", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			if calls.Load() < 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			respond("recovered")(w, r)
		}
		cfg.Retry.Attempts = 2

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{Prompt: "hi"})

		Expect(result.Succeeded).To(BeTrue())
		Expect(result.RawText).To(Equal("recovered"))
		Expect(calls.Load()).To(Equal(int32(2)))
	})

	It("does not retry client errors", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}
		cfg.Retry.Attempts = 3

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{Prompt: "hi"})

		Expect(result.Succeeded).To(BeFalse())
		Expect(calls.Load()).To(Equal(int32(1)))
	})

	It("fails the call when it exceeds the call timeout", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}
		cfg.CallTimeout = 50 * time.Millisecond

		result := completion.NewConnector(cfg, zap.NewNop()).Complete(ctx, &entity.CompletionRequest{Prompt: "hi"})

		Expect(result.Succeeded).To(BeFalse())
		Expect(result.ErrorDetail).NotTo(BeEmpty())
	})
})

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	pkghttp "github.com/futig/storefront-ai/pkg/http"
)

var _ = Describe("Connector", func() {
	var (
		server   *httptest.Server
		handler  http.HandlerFunc
		conn     *pkghttp.Connector
		ctx      context.Context
		lastAuth string
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastAuth = r.Header.Get("Authorization")
			handler(w, r)
		}))
		conn = pkghttp.NewConnector(
			&pkghttp.ConnectorConfig{BaseURL: server.URL, Logger: zap.NewNop()},
			pkghttp.WithRequestLogging(),
			pkghttp.WithAuthToken("secret"),
		)
	})

	AfterEach(func() {
		server.Close()
	})

	It("posts JSON and decodes the response", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.URL.Path).To(Equal("/echo"))
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

			var body map[string]string
			Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
			json.NewEncoder(w).Encode(map[string]string{"echo": body["value"]})
		}

		var resp map[string]string
		err := conn.DoRequest(ctx, http.MethodPost, "/echo", map[string]string{"value": "hi"}, &resp)

		Expect(err).NotTo(HaveOccurred())
		Expect(resp["echo"]).To(Equal("hi"))
		Expect(lastAuth).To(Equal("Bearer secret"))
	})

	It("returns an HTTPError for non-2xx statuses", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("model not loaded"))
		}

		err := conn.DoRequest(ctx, http.MethodGet, "/", nil, nil)

		var httpErr *pkghttp.HTTPError
		Expect(errors.As(err, &httpErr)).To(BeTrue())
		Expect(httpErr.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(httpErr.Message).To(Equal("model not loaded"))
	})

	It("returns a NetworkError when the server is unreachable", func() {
		server.Close()

		err := conn.DoRequest(ctx, http.MethodGet, "/", nil, nil)

		var netErr *pkghttp.NetworkError
		Expect(errors.As(err, &netErr)).To(BeTrue())
	})
})

var _ = DescribeTable("IsRetryable",
	func(err error, expected bool) {
		Expect(pkghttp.IsRetryable(err)).To(Equal(expected))
	},
	Entry("nil", nil, false),
	Entry("network error", &pkghttp.NetworkError{Err: errors.New("connection refused")}, true),
	Entry("server error", &pkghttp.HTTPError{StatusCode: 503}, true),
	Entry("rate limited", &pkghttp.HTTPError{StatusCode: 429}, true),
	Entry("client error", &pkghttp.HTTPError{StatusCode: 400}, false),
	Entry("context canceled", fmt.Errorf("call: %w", context.Canceled), false),
	Entry("plain error", errors.New("decode response"), false),
)

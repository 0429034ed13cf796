package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"libraryhub/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		StoreDriver:    config.DriverMemory,
		BorrowPeriod:   14 * 24 * time.Hour,
		SessionSecret:  "test-secret",
		SessionTTL:     time.Hour,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxBodyBytes:   1 << 20,
		DemoData:       true,
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	a, err := newApp(testConfig(), zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	srv := httptest.NewServer(a.routes())
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func TestRoutes(t *testing.T) {
	srv, client := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/books", "", http.StatusOK},
		{http.MethodGet, "/cart", "", http.StatusOK},
		{http.MethodGet, "/contact", "", http.StatusOK},
		{http.MethodGet, "/dashboard", "", http.StatusOK},
		{http.MethodGet, "/profile", "", http.StatusOK},
		{http.MethodGet, "/login", "", http.StatusNotFound},
		{http.MethodGet, "/v1/books?q=tolkien", "", http.StatusOK},
		{http.MethodGet, "/v1/books?category=poetry", "", http.StatusBadRequest},
		{http.MethodGet, "/v1/books/8", "", http.StatusOK},
		{http.MethodGet, "/v1/books/99", "", http.StatusNotFound},
		{http.MethodGet, "/v1/cart", "", http.StatusOK},
		{http.MethodPost, "/v1/cart/items", `{"book_id":6}`, http.StatusCreated},
		{http.MethodDelete, "/v1/cart/items/6", "", http.StatusOK},
		{http.MethodPost, "/v1/cart/checkout", "", http.StatusOK},
		{http.MethodPost, "/v1/cart/checkout", "", http.StatusConflict},
		{http.MethodGet, "/v1/contact", "", http.StatusOK},
		{http.MethodGet, "/v1/profile", "", http.StatusOK},
		{http.MethodPatch, "/v1/profile", `{"phone":"+1 (555) 987-6543"}`, http.StatusOK},
		{http.MethodGet, "/v1/dashboard", "", http.StatusOK},
		{http.MethodPost, "/v1/loans/unknown/renew", "", http.StatusNotFound},
		{http.MethodPost, "/v1/loans/unknown/return", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
		require.NoError(t, err)
		if tt.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tt.code, resp.StatusCode, "%s %s", tt.method, tt.path)
	}
}

func TestRoutes_DemoSessionSharedAcrossViews(t *testing.T) {
	srv, client := newTestServer(t)

	resp, err := client.Get(srv.URL + "/v1/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, err = client.Get(srv.URL + "/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "The Great Gatsby")
	assert.Contains(t, buf.String(), "To Kill a Mockingbird")
}

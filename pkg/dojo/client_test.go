package dojo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, cfg Config) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestNewNormalizesTrailingSlash(t *testing.T) {
	client, err := New(context.Background(), Config{BaseURL: "https://dojo.example/"})
	require.NoError(t, err)
	assert.Equal(t, "https://dojo.example", client.BaseURL())
}

func TestTokenHeaderOnRequests(t *testing.T) {
	var gotAuth, gotAgent string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	})
	client, _ := newTestClient(t, handler, Config{Token: "sekrit"})

	_, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Token sekrit", gotAuth)
	assert.Contains(t, gotAgent, "dojoctl/")
}

func TestTokenExchange(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/api-token-auth/":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "admin", r.PostForm.Get("username"))
			assert.Equal(t, "hunter2", r.PostForm.Get("password"))
			w.Write([]byte(`{"token":"exchanged"}`))
		case "/api/v2/products/":
			assert.Equal(t, "Token exchanged", r.Header.Get("Authorization"))
			w.Write([]byte(`{"results":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	client, _ := newTestClient(t, handler, Config{Username: "admin", Password: "hunter2"})

	_, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)
}

func TestTokenExchangeEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"token":""}`))
	}))
	defer srv.Close()

	_, err := New(context.Background(), Config{
		BaseURL:    srv.URL,
		Username:   "admin",
		Password:   "hunter2",
		HTTPClient: srv.Client(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestAPIErrorCarriesBodySnippet(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	})
	client, _ := newTestClient(t, handler, Config{Token: "bad"})

	_, err := client.ListProducts(context.Background(), "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Contains(t, apiErr.Body, "Invalid token")
	assert.Contains(t, apiErr.Error(), "403")
}

func TestAPIErrorTruncatesLongBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(strings.Repeat("x", 4096)))
	})
	client, _ := newTestClient(t, handler, Config{})

	_, err := client.ListProducts(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Len(t, apiErr.Body, maxErrorBody)
}

func TestSchemaDocument(t *testing.T) {
	t.Run("json document decodes", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(`{"openapi":"3.0.3"}`))
		})
		client, _ := newTestClient(t, handler, Config{})

		doc, err := client.SchemaDocument(context.Background(), "/api/v2/oa3/openapi.json")
		require.NoError(t, err)
		assert.Equal(t, "3.0.3", doc["openapi"])
	})

	t.Run("non-json content type is rejected", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html>login page</html>`))
		})
		client, _ := newTestClient(t, handler, Config{})

		_, err := client.SchemaDocument(context.Background(), "/api/v2/oa3/openapi.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want JSON")
	})

	t.Run("error status is rejected", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		client, _ := newTestClient(t, handler, Config{})

		_, err := client.SchemaDocument(context.Background(), "/api/v2/oa3/openapi.json")
		assert.Error(t, err)
	})
}

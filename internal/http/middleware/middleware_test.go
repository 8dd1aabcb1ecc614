package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/shop-admin/internal/http/middleware"
	"github.com/tuanvumaihuynh/shop-admin/pkg/correlationid"
)

const contract = `
openapi: 3.0.3
info:
  title: test
  version: 1.0.0
paths:
  /items:
    get:
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            minimum: 1
      responses:
        '200':
          description: ok
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
      responses:
        '201':
          description: created
`

func TestOpenAPIValidator(t *testing.T) {
	var gotErr error
	validate, err := middleware.OpenAPIValidator([]byte(contract), func(w http.ResponseWriter, _ *http.Request, err error) {
		gotErr = err
		w.WriteHeader(http.StatusBadRequest)
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(validate)
	r.Get("/items", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/items", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "hoodie")
		w.WriteHeader(http.StatusCreated)
	})
	r.Get("/other", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	serve := func(req *http.Request) int {
		gotErr = nil
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}

	t.Run("Should pass valid requests with their body intact", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/items?limit=2", nil)))

		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"hoodie"}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusCreated, serve(req))
		assert.NoError(t, gotErr)
	})

	t.Run("Should reject requests that break the contract", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(httptest.NewRequest(http.MethodGet, "/items?limit=0", nil)))
		assert.Error(t, gotErr)

		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusBadRequest, serve(req))
		assert.Error(t, gotErr)
	})

	t.Run("Should leave undocumented routes to the router", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/other", nil)))
		assert.NoError(t, gotErr)
	})

	t.Run("Should fail on an invalid document", func(t *testing.T) {
		_, err := middleware.OpenAPIValidator([]byte("openapi: [broken"), nil)
		assert.Error(t, err)
	})
}

func TestCorrelationID(t *testing.T) {
	var seen string
	h := middleware.CorrelationID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = correlationid.FromContext(r.Context())
	}))

	t.Run("Should keep the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(correlationid.Header, "corr-1")
		resp := httptest.NewRecorder()

		h.ServeHTTP(resp, req)
		assert.Equal(t, "corr-1", seen)
		assert.Equal(t, "corr-1", resp.Header().Get(correlationid.Header))
	})

	t.Run("Should generate an id when missing", func(t *testing.T) {
		resp := httptest.NewRecorder()

		h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, resp.Header().Get(correlationid.Header))
	})
}

func TestRecoverer(t *testing.T) {
	t.Run("Should turn panics into 500 responses", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		h := middleware.Recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.JSONEq(t, `{"code":"internalServerError","message":"an unknown error occurred"}`, resp.Body.String())
	})
}

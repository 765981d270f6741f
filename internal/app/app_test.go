package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"profilecard/internal/app"
	"profilecard/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	a := app.New(app.Deps{Store: repositories.NewMemoryStore()})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["driver"])
}

func TestHealth_StoreUnreachable(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.SetPing(func(context.Context) error { return errors.New("connection refused") })
	a := app.New(app.Deps{Store: store})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	a := app.New(app.Deps{Store: repositories.NewMemoryStore()})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestUnknownRoute(t *testing.T) {
	a := app.New(app.Deps{Store: repositories.NewMemoryStore()})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/api/v1/widgets", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCORS(t *testing.T) {
	a := app.New(app.Deps{Store: repositories.NewMemoryStore()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sellers", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

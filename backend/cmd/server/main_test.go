package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitemate/backend/internal/api"
	"suitemate/backend/internal/store"
	"suitemate/backend/pkg/config"
)

func TestNewService(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.RecordMatch(ctx, 1, 2))

	t.Run("request mode", func(t *testing.T) {
		svc, err := newService(ctx, &config.Config{NetworkMode: config.NetworkModeRequest}, mem, nil)
		require.NoError(t, err)
		assert.False(t, svc.Shared())
	})

	t.Run("shared mode loads the graph", func(t *testing.T) {
		svc, err := newService(ctx, &config.Config{NetworkMode: config.NetworkModeShared}, mem, nil)
		require.NoError(t, err)
		assert.True(t, svc.Shared())

		// later store writes are not visible to the resident graph
		require.NoError(t, mem.RecordMatch(ctx, 2, 3))
		connected, err := svc.Connected(ctx, 2, 3)
		require.NoError(t, err)
		assert.False(t, connected)
	})
}

func TestServerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	svc, err := newService(ctx, &config.Config{NetworkMode: config.NetworkModeShared}, store.NewMemory(), nil)
	require.NoError(t, err)
	router := api.NewRouter(svc, api.Options{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])

	// Test missing fields
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/matches", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

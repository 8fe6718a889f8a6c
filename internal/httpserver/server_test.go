package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/batch"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/strategy"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, New(nil).Router(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestNotFound(t *testing.T) {
	rec := get(t, New(nil).Router(), "/game/new")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/game/new"`)
}

func TestBatchStatus(t *testing.T) {
	rec := get(t, New(nil).Router(), "/batch/status")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	space, err := game.NewSpace(2, []int{1, 2, 3})
	require.NoError(t, err)
	var tr batch.Tracker
	nop := zerolog.Nop()
	_, err = batch.Run(context.Background(), space, func(int) (strategy.Strategy[int], error) {
		return strategy.NewMinimax[int](strategy.Options{Workers: 1}), nil
	}, batch.Options{Tracker: &tr, Logger: &nop})
	require.NoError(t, err)

	rec = get(t, New(&tr).Router(), "/batch/status")
	require.Equal(t, http.StatusOK, rec.Code)
	var st batch.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.False(t, st.Running)
	assert.Equal(t, int64(9), st.Total)
	assert.Equal(t, int64(9), st.Done)
	assert.Equal(t, int64(9), st.Solved)
}

func TestMetrics(t *testing.T) {
	rec := get(t, New(nil).Router(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "mastermind_"), "collectors registered")
}

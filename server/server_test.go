package server_test

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state struct {
	State    string `json:"state"`
	Score    uint   `json:"score"`
	List     string `json:"list"`
	Category int    `json:"category"`
	Mode     string `json:"mode"`
	Items    []struct {
		ID   string  `json:"id"`
		Text string  `json:"text"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	} `json:"items"`
	Progress struct {
		Total int `json:"total"`
	} `json:"progress"`
}

func setup(t *testing.T, cfg server.Config) (*engine.Engine, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := content.NewCatalog(content.WordList{
		ID:            "pets",
		CategoryNames: [2]string{"A", "B"},
		CategoryWords: [2][]string{{"fish"}, {"cat"}},
		CommonWords:   []string{"pet"},
	})
	require.NoError(t, err)

	quiet := log.New(io.Discard, "", 0)
	e, err := engine.New(catalog, engine.DefaultConfig(),
		engine.WithManualTicks(),
		engine.WithRand(rand.New(rand.NewPCG(3, 3))),
		engine.WithLogger(quiet),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS, cfg.RateLimitBurst = 1000, 1000
	}
	return e, server.New(e, cfg, quiet).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) state {
	t.Helper()
	var s state
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestHealth(t *testing.T) {
	_, h := setup(t, server.Config{})
	w := do(t, h, http.MethodGet, server.RouteHealth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestLists(t *testing.T) {
	_, h := setup(t, server.Config{})
	w := do(t, h, http.MethodGet, server.RouteLists, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	var body struct {
		Lists []struct {
			ID         string    `json:"id"`
			Categories [2]string `json:"categories"`
		} `json:"lists"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Lists, 1)
	assert.Equal(t, "pets", body.Lists[0].ID)
	assert.Equal(t, [2]string{"A", "B"}, body.Lists[0].Categories)
}

func TestLifecycleOverHTTP(t *testing.T) {
	e, h := setup(t, server.Config{})

	w := do(t, h, http.MethodPost, server.RouteStart, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no word list selected")

	w = do(t, h, http.MethodPost, server.RouteSelect, gin.H{"list": "pets", "category": 0})
	require.Equal(t, http.StatusOK, w.Code)
	s := decodeState(t, w)
	assert.Equal(t, "Ready", s.State)
	assert.Equal(t, "pets", s.List)

	w = do(t, h, http.MethodPost, server.RoutePlayfield, gin.H{"width": 640, "height": 480})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, server.RouteStart, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Active", decodeState(t, w).State)

	e.TickSpawn()
	s = decodeState(t, do(t, h, http.MethodGet, server.RouteState, nil))
	require.Len(t, s.Items, 1)
	assert.NotContains(t, do(t, h, http.MethodGet, server.RouteState, nil).Body.String(), "isCorrect")

	w = do(t, h, http.MethodPost, server.RouteHit, gin.H{"id": s.Items[0].ID})
	require.Equal(t, http.StatusOK, w.Code)
	var hit struct {
		ID      string `json:"id"`
		Outcome string `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hit))
	assert.Equal(t, s.Items[0].ID, hit.ID)
	assert.Contains(t, []string{"Correct", "Incorrect"}, hit.Outcome)

	w = do(t, h, http.MethodPost, server.RouteHit, gin.H{"id": s.Items[0].ID})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hit))
	assert.Equal(t, "Missing", hit.Outcome)

	w = do(t, h, http.MethodPost, server.RoutePause, nil)
	assert.Equal(t, "Paused", decodeState(t, w).State)
	w = do(t, h, http.MethodPost, server.RoutePause, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPost, server.RouteReset, nil)
	assert.Equal(t, "Ready", decodeState(t, w).State)
}

func TestHitByPosition(t *testing.T) {
	e, h := setup(t, server.Config{})
	require.NoError(t, e.SelectList("pets", 0))
	require.NoError(t, e.Start())
	e.TickSpawn()
	item := e.Snapshot().Items[0]

	w := do(t, h, http.MethodPost, server.RouteHit, gin.H{"x": item.X + 1, "y": item.Y + 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), item.ID.String())

	w = do(t, h, http.MethodPost, server.RouteHit, gin.H{"x": -500, "y": -500})
	assert.Contains(t, w.Body.String(), `"outcome":"Missing"`)
}

func TestCategoryAndMode(t *testing.T) {
	_, h := setup(t, server.Config{})
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, server.RouteCategory, gin.H{"category": 1}).Code)

	do(t, h, http.MethodPost, server.RouteSelect, gin.H{"list": "pets", "category": 0})
	w := do(t, h, http.MethodPost, server.RouteCategory, gin.H{"category": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeState(t, w).Category)

	w = do(t, h, http.MethodPost, server.RouteMode, gin.H{"mode": "common"})
	require.Equal(t, http.StatusOK, w.Code)
	s := decodeState(t, w)
	assert.Equal(t, "common", s.Mode)
	assert.Equal(t, 1, s.Progress.Total)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, server.RouteMode, gin.H{"mode": "both"}).Code)
}

func TestBadRequests(t *testing.T) {
	_, h := setup(t, server.Config{})

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"unknown list", server.RouteSelect, gin.H{"list": "nope", "category": 0}, http.StatusNotFound},
		{"bad category", server.RouteSelect, gin.H{"list": "pets", "category": 5}, http.StatusBadRequest},
		{"missing category", server.RouteSelect, gin.H{"list": "pets"}, http.StatusBadRequest},
		{"missing list", server.RouteSelect, gin.H{"category": 0}, http.StatusBadRequest},
		{"empty hit", server.RouteHit, gin.H{}, http.StatusBadRequest},
		{"bad id", server.RouteHit, gin.H{"id": "zz"}, http.StatusBadRequest},
		{"not json", server.RoutePlayfield, "nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRateLimit(t *testing.T) {
	_, h := setup(t, server.Config{RateLimitRPS: 1, RateLimitBurst: 2})

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, do(t, h, http.MethodPost, server.RouteReset, nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, server.RouteState, nil).Code)
}

func TestGzip(t *testing.T) {
	_, h := setup(t, server.Config{})
	req := httptest.NewRequest(http.MethodGet, server.RouteLists, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"pets"`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	_, h := setup(t, server.Config{})
	req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

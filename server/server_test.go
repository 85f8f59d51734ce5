package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/server"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.RateLimit = 0
	if mutate != nil {
		mutate(cfg)
	}
	core, logs := observer.New(zap.InfoLevel)
	srv := server.New(cfg.Server, cfg.Clustering, zap.New(core), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, logs
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/cluster", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

const sixPoints = `[[0,0],[0,1],[1,0],[10,10],[10,11],[11,10]]`

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClusterOK(t *testing.T) {
	ts, logs := newTestServer(t, nil)
	resp, data := post(t, ts, `{"points": `+sixPoints+`, "clusters": 2, "demand": [3, 3], "max_iterations": 20, "seed": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out server.ClusterResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, []int{3, 3}, out.Sizes)
	assert.Len(t, out.Labels, 6)
	assert.Len(t, out.Centers, 2)
	assert.Equal(t, int64(5), out.Seed)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, out.RunID, resp.Header.Get("X-Run-ID"))

	assert.Equal(t, 1, logs.FilterMessage("Computing clusters").Len())
	assert.Equal(t, 1, logs.FilterMessage("Clusters ready").Len())
}

func TestClusterRestarts(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, data := post(t, ts, `{"points": `+sixPoints+`, "clusters": 2, "min_points": 2, "restarts": 4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out server.ClusterResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Restart >= 0 && out.Restart < 4)

	mresp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	runs := 0
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(line, "capkmeans_runs_total{") {
			assert.True(t, strings.HasSuffix(line, " 1"), line)
			runs++
		}
	}
	assert.Equal(t, 1, runs, "one request counts as one run")
}

func TestClusterErrors(t *testing.T) {
	ts, _ := newTestServer(t, func(c *config.Config) { c.Server.MaxPoints = 10 })
	cases := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"malformed json", `{"points": [`, http.StatusBadRequest, ""},
		{"unknown field", `{"points": [[0,0]], "clusters": 1, "colour": 1}`, http.StatusBadRequest, ""},
		{"missing clusters", `{"points": [[0,0]]}`, http.StatusUnprocessableEntity, "invalid configuration"},
		{"bad init", `{"points": [[0,0]], "clusters": 1, "init": "kmeans++"}`, http.StatusUnprocessableEntity, "invalid configuration"},
		{"demand exceeds points", `{"points": ` + sixPoints + `, "clusters": 2, "demand": [4, 4]}`, http.StatusUnprocessableEntity, "invalid configuration"},
		{"demand length", `{"points": ` + sixPoints + `, "clusters": 3, "demand": [1, 1]}`, http.StatusUnprocessableEntity, "invalid configuration"},
		{"too many points", `{"points": [[0,0],[1,1],[2,2],[3,3],[4,4],[5,5],[6,6],[7,7],[8,8],[9,9],[10,10]], "clusters": 1}`, http.StatusRequestEntityTooLarge, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := post(t, ts, tc.body)
			require.Equal(t, tc.status, resp.StatusCode, string(data))
			var out server.ErrorResponse
			require.NoError(t, json.Unmarshal(data, &out))
			assert.NotEmpty(t, out.Error)
			assert.Equal(t, tc.kind, out.Kind)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, _ := post(t, ts, `{"points": `+sixPoints+`, "clusters": 2, "demand": [3, 3]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = post(t, ts, `{"points": `+sixPoints+`, "clusters": 2, "demand": [5, 5]}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	mresp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `capkmeans_runs_total{state="error"} 1`)
	assert.Contains(t, text, `capkmeans_http_requests_total{method="POST",route="/v1/cluster",status="200"} 1`)
	assert.Contains(t, text, "capkmeans_solve_duration_seconds_count")
}

func TestRateLimit(t *testing.T) {
	ts, _ := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimit = 0.001
		c.Server.Burst = 1
	})
	body := `{"points": [[0,0],[1,1]], "clusters": 1}`
	resp, _ := post(t, ts, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = post(t, ts, body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))

	// health checks are not limited
	hresp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	hresp.Body.Close()
	assert.Equal(t, http.StatusOK, hresp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/v1/cluster", bytes.NewReader(nil))
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

package core

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techwave/internal/types"
)

// mounted returns a server with every route and middleware registered.
func mounted(t *testing.T) *testServer {
	t.Helper()
	ts := newTestServer(t, nil)
	ts.MountRoutes()
	return ts
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parseTimestamp(t *testing.T, s string) time.Time {
	t.Helper()
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, s)
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

func assertInternalError(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestGetMetrics_ReturnsSampleInRange(t *testing.T) {
	ts := mounted(t)

	for range 200 {
		rec := do(t, ts.Handler(), http.MethodGet, "/api/metrics", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.Len(t, raw, 3)

		var sample types.MetricsSample
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sample))
		for _, v := range []int{sample.CPU, sample.Memory, sample.Disk} {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 100)
		}
	}
}

func TestGetMetrics_LogsSampleAtInfo(t *testing.T) {
	ts := newTestServer(t, fixedSampler{types.MetricsSample{CPU: 12, Memory: 34, Disk: 56}})
	ts.MountRoutes()

	rec := do(t, ts.Handler(), http.MethodGet, "/api/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cpu":12,"memory":34,"disk":56}`, rec.Body.String())

	logs := ts.logs.records(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "INFO", logs[0]["level"])
	assert.Equal(t, "Metrics requested", logs[0]["msg"])
	assert.Equal(t, "techwave-api", logs[0]["service"])
	assert.Equal(t, map[string]any{"cpu": float64(12), "memory": float64(34), "disk": float64(56)}, logs[0]["metrics"])
}

func TestGetMetrics_ConcurrentRequestsAreIndependent(t *testing.T) {
	ts := mounted(t)

	const n = 64
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		samples = make(map[types.MetricsSample]int)
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
			rec := httptest.NewRecorder()
			ts.Handler().ServeHTTP(rec, req)

			var s types.MetricsSample
			if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			mu.Lock()
			samples[s]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Greater(t, len(samples), n-5, "samples should not repeat across concurrent requests")
}

func TestPostAlert_AcknowledgesAndLogsAtWarn(t *testing.T) {
	ts := mounted(t)
	arrival := time.Now().UTC().Truncate(time.Millisecond)

	rec := do(t, ts.Handler(), http.MethodPost, "/api/alert", "application/json",
		`{"host":"web-1","severity":"critical","value":97}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var ack types.AlertAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "Alert received", ack.Status)
	assert.False(t, parseTimestamp(t, ack.Timestamp).Before(arrival))

	logs := ts.logs.records(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "WARN", logs[0]["level"])
	assert.Equal(t, "Alert received", logs[0]["msg"])
	assert.Equal(t, map[string]any{"host": "web-1", "severity": "critical", "value": float64(97)}, logs[0]["alert"])
}

func TestPostAlert_AcceptsAnyJSONShape(t *testing.T) {
	ts := mounted(t)

	bodies := map[string]string{
		"empty object": `{}`,
		"array":        `[1,"two",{"three":3}]`,
		"nested":       `{"a":{"b":{"c":[null,true]}}}`,
		"padded":       "  \n{\"k\":\"v\"}\n ",
		"big integer":  `{"id":12345678901234567890}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := do(t, ts.Handler(), http.MethodPost, "/api/alert", "application/json; charset=utf-8", body)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestPostAlert_BigIntegerLoggedVerbatim(t *testing.T) {
	ts := mounted(t)

	rec := do(t, ts.Handler(), http.MethodPost, "/api/alert", "application/json", `{"id":12345678901234567890}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, ts.logs.String(), `"alert":{"id":12345678901234567890}`)
}

func TestPostAlert_MissingBodyIsNotAnError(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"no body, no content type", "", ""},
		{"json content type, empty body", "application/json", ""},
		{"non-json content type", "text/plain", "not json at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := mounted(t)
			rec := do(t, ts.Handler(), http.MethodPost, "/api/alert", tt.contentType, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			logs := ts.logs.records(t)
			require.Len(t, logs, 1)
			assert.Equal(t, map[string]any{}, logs[0]["alert"])
		})
	}
}

func TestPostAlert_MalformedJSONFailsOpaquely(t *testing.T) {
	tests := map[string]string{
		"syntax error":      `{"host": `,
		"top-level string":  `"just a string"`,
		"top-level number":  `42`,
		"top-level null":    `null`,
		"trailing garbage":  `{"a":1} {"b":2}`,
		"trailing brace":    `{"a":1}}`,
		"exceeds body size": `{"pad":"` + strings.Repeat("x", 2048) + `"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			ts := mounted(t)
			rec := do(t, ts.Handler(), http.MethodPost, "/api/alert", "application/json", body)
			assertInternalError(t, rec)

			logs := ts.logs.records(t)
			require.Len(t, logs, 1)
			assert.Equal(t, "ERROR", logs[0]["level"])
			assert.Equal(t, "Error occurred", logs[0]["msg"])
			assert.NotEmpty(t, logs[0]["error"])
			assert.NotContains(t, rec.Body.String(), "json")
		})
	}
}

func TestGetHealth(t *testing.T) {
	ts := mounted(t)
	before := time.Now().UTC().Truncate(time.Millisecond)

	rec := do(t, ts.Handler(), http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var status types.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, parseTimestamp(t, status.Timestamp).Before(before))
	assert.Empty(t, ts.logs.records(t), "health checks write no application logs")
}

func TestGetHealth_UsesServerClock(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.now = func() time.Time { return time.Date(2026, 10, 15, 8, 30, 0, 125_000_000, time.UTC) }
	ts.MountRoutes()

	rec := do(t, ts.Handler(), http.MethodGet, "/health", "", "")
	assert.JSONEq(t, `{"status":"healthy","timestamp":"2026-10-15T08:30:00.125Z"}`, rec.Body.String())
}

func TestRoutes_MethodAndPathMismatch(t *testing.T) {
	ts := mounted(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, ts.Handler(), http.MethodPost, "/api/metrics", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, ts.Handler(), http.MethodGet, "/api/alert", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, ts.Handler(), http.MethodGet, "/api/unknown", "", "").Code)
}

func TestRoutes_CORSAllowsAnyOrigin(t *testing.T) {
	ts := mounted(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, []string{"*", "https://dashboard.example"}, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_CORSPreflight(t *testing.T) {
	ts := mounted(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/alert", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Contains(t, []string{"*", "https://dashboard.example"}, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Empty(t, ts.logs.records(t), "preflight never reaches the alert handler")
}

func TestRoutes_AccessLogCombinedFormat(t *testing.T) {
	ts := mounted(t)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	req.Header.Set("User-Agent", "probe/1.0")
	req.Header.Set("Referer", "https://dashboard.example/")
	ts.Handler().ServeHTTP(httptest.NewRecorder(), req)

	line := strings.TrimSpace(ts.access.String())
	assert.Regexp(t, `^\S+ - - \[[^\]]+\] "GET /api/metrics HTTP/1\.1" 200 \d+ "https://dashboard\.example/" "probe/1\.0"$`, line)
}

func TestRoutes_AccessLogRecordsFailures(t *testing.T) {
	ts := mounted(t)

	do(t, ts.Handler(), http.MethodPost, "/api/alert", "application/json", `{bad`)
	assert.Contains(t, ts.access.String(), `"POST /api/alert HTTP/1.1" 500`)
}

func TestRoutes_RequestIDEchoedAndLoggedOnFailure(t *testing.T) {
	ts := mounted(t)

	req := httptest.NewRequest(http.MethodPost, "/api/alert", strings.NewReader(`{bad`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-from-client")
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-from-client", rec.Header().Get("X-Request-Id"))
	logs := ts.logs.records(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "req-from-client", logs[0]["request_id"])
}

func TestRoutes_PrometheusEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.Metrics = NewPrometheusCollector(prometheus.NewRegistry())
	ts.MountRoutes()

	do(t, ts.Handler(), http.MethodGet, "/api/metrics", "", "")
	do(t, ts.Handler(), http.MethodGet, "/health", "", "")

	rec := do(t, ts.Handler(), http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `techwave_http_requests_total{endpoint="/api/metrics",method="GET",status="200"} 1`)
	assert.Contains(t, body, `techwave_http_requests_total{endpoint="/health",method="GET",status="200"} 1`)
	assert.Contains(t, body, "techwave_http_request_duration_seconds_bucket")
}

func TestRoutes_PrometheusEndpointDisabled(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.Config.Server.MetricsEnabled = false
	ts.Metrics = NewPrometheusCollector(prometheus.NewRegistry())
	ts.MountRoutes()

	assert.Equal(t, http.StatusNotFound, do(t, ts.Handler(), http.MethodGet, "/metrics", "", "").Code)
}

func TestRoutes_UnknownPathDoesNotParseBody(t *testing.T) {
	ts := mounted(t)

	for _, path := range []string{"/nowhere", "/api/nowhere"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, ts.Handler(), http.MethodPost, path, "application/json", `{bad`)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
	assert.Empty(t, ts.logs.records(t), "no body parse error is logged for unknown routes")
}

func TestRoutes_CORSHeadersRequireOrigin(t *testing.T) {
	ts := mounted(t)

	rec := do(t, ts.Handler(), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf) // plain JSON lines
	return &buf
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/rid", func(c *gin.Context) {
		if v, ok := c.Get(requestIDKey); !ok || v == "" {
			t.Fatalf("requestID not set in context")
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rid", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated %s header", requestIDHeader)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(strings.ToLower(requestIDHeader), "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	// Oversized ids are replaced.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", 300))
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); len(got) != 36 {
		t.Fatalf("expected fresh uuid, got %q", got)
	}
}

func TestLogger_LevelsAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(RedactOptions{}))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/err", func(c *gin.Context) {
		_ = c.Error(errSentinel{})
		c.Status(http.StatusBadRequest)
	})

	for path, want := range map[string]int{"/ok": 200, "/missing": 404, "/err": 400} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("GET %s -> %d, want %d", path, w.Code, want)
		}
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) || !strings.Contains(logs, `"path":"/ok"`) {
		t.Fatalf("expected info log with route path, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"path":"/missing"`) {
		t.Fatalf("expected warn log with raw path fallback, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, `"errors"`) {
		t.Fatalf("expected error log, got:\n%s", logs)
	}
}

type errSentinel struct{}

func (e errSentinel) Error() string { return "boom" }

func TestLogger_RedactsQueryAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}, LogHeaders: true}))
	r.GET("/foods/search", func(c *gin.Context) {
		c.Set("userID", "u-1")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet,
		"/foods/search?q=rice&email=john.doe@example.com&id=123e4567-e89b-12d3-a456-426614174000&phone=212-555-1212", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Api-Key", "k-123")
	req.Header.Set("X-Contact", "jane@example.org")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line not JSON: %v\n%s", err, buf.String())
	}
	q, _ := entry["query"].(string)
	for _, leak := range []string{"john.doe@example.com", "123e4567", "212-555-1212"} {
		if strings.Contains(q, leak) {
			t.Fatalf("query leaked %q: %s", leak, q)
		}
	}
	if !strings.Contains(q, "q=rice") || !strings.Contains(q, "[REDACTED:email]") || !strings.Contains(q, "[REDACTED:id]") {
		t.Fatalf("unexpected query: %s", q)
	}
	hdrs, _ := entry["headers"].(map[string]any)
	if hdrs["Authorization"] != redactedValue || hdrs["X-Api-Key"] != redactedValue {
		t.Fatalf("headers not masked: %v", hdrs)
	}
	if hdrs["X-Contact"] != "[REDACTED:email]" {
		t.Fatalf("header value not scrubbed: %v", hdrs["X-Contact"])
	}
	if entry["user_id"] != "u-1" {
		t.Fatalf("user_id = %v", entry["user_id"])
	}
	if strings.Contains(buf.String(), "secret-token") {
		t.Fatalf("token leaked to logs")
	}
}

func TestLogger_RequestContextCarriesLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(RedactOptions{}))
	r.GET("/ctx", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("from-service")
		LoggerFrom(c).Info().Msg("from-handler")
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(requestIDHeader, "rid-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "from-") && !strings.Contains(line, `"request_id":"rid-42"`) {
			t.Fatalf("scoped log missing request id: %s", line)
		}
	}
	if !strings.Contains(buf.String(), "from-service") || !strings.Contains(buf.String(), "from-handler") {
		t.Fatalf("expected both scoped logs, got:\n%s", buf.String())
	}
}

func TestLoggerFrom_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/use", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("custom")
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/use", nil))
	if !strings.Contains(buf.String(), `"message":"custom"`) {
		t.Fatalf("expected custom log in fallback")
	}
	if strings.Contains(buf.String(), `"request_id"`) {
		t.Fatalf("fallback logger unexpectedly had request_id")
	}
}

func TestRecovery_PanicsToJSON500AndLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(RedactOptions{}), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from Recovery, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["code"] != "internal_error" || body["request_id"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic log, got:\n%s", buf.String())
	}
}

func TestRecovery_PanicAfterWrite_NoJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial-body")
		panic("late kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))
	if strings.Contains(strings.ToLower(w.Header().Get("Content-Type")), "application/json") {
		t.Fatalf("expected no JSON error body after a write; body=%q", w.Body.String())
	}
}

func TestRedactAndHelpers(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"plain rice":           "plain rice",
		"mail bob@example.com": "mail [REDACTED:email]",
		"call 212-555-1212":    "call [REDACTED:phone]",
	}
	for in, want := range cases {
		if got := Redact(in); got != want {
			t.Fatalf("Redact(%q) = %q, want %q", in, got, want)
		}
	}
	if asString("x") != "x" || asString(123) != "" {
		t.Fatalf("asString failed")
	}
	if truncate("hello", 10) != "hello" || truncate("abcdefgh", 5) != "abcde…" || truncate("abc", 0) != "abc" {
		t.Fatalf("truncate failed")
	}
}

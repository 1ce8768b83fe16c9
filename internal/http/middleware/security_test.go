package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func serveWith(opt SecurityOptions, prep func(*http.Request), pre gin.HandlerFunc) http.Header {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	if prep != nil {
		prep(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	h := serveWith(SecurityOptions{}, nil, RequestID())

	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	for _, k := range []string{"Permissions-Policy", "Cache-Control", "Strict-Transport-Security"} {
		if h.Get(k) != "" {
			t.Fatalf("unexpected %s: %q", k, h.Get(k))
		}
	}
	if h.Get("Access-Control-Expose-Headers") != requestIDHeader {
		t.Fatalf("expose header = %q", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestSecurityHeaders_PolicyAndNoStore(t *testing.T) {
	h := serveWith(SecurityOptions{EnablePolicy: true, NoStore: true}, nil, nil)
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("policy headers missing: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("cache headers missing: %#v", h)
	}
	if h.Get("Access-Control-Expose-Headers") != "" {
		t.Fatalf("no request id, nothing to expose")
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}

	if h := serveWith(opt, nil, nil); h.Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain HTTP")
	}
	h := serveWith(opt, func(r *http.Request) { r.TLS = &tls.ConnectionState{} }, nil)
	if got := h.Get("Strict-Transport-Security"); got != "max-age=3600; includeSubDomains; preload" {
		t.Fatalf("HSTS = %q", got)
	}
	h = serveWith(SecurityOptions{EnableHSTS: true}, func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "HTTPS")
	}, nil)
	if got := h.Get("Strict-Transport-Security"); got != "max-age=15552000; includeSubDomains; preload" {
		t.Fatalf("default HSTS = %q", got)
	}
}

func TestExposeHeader_AppendsOnce(t *testing.T) {
	h := http.Header{}
	h.Set("Access-Control-Expose-Headers", "ETag")
	exposeHeader(h, requestIDHeader)
	exposeHeader(h, requestIDHeader)
	if got := h.Get("Access-Control-Expose-Headers"); got != "ETag, X-Request-ID" {
		t.Fatalf("expose = %q", got)
	}
}

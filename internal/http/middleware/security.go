// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders for the JSON API: baseline hardening
// headers, optional browser feature policies, no-store caching for
// per-user data and HSTS on HTTPS requests.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // defaults to 180 days
	NoStore      bool          // Cache-Control: no-store on every response
	EnablePolicy bool          // Permissions-Policy and cross-domain policy
}

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityHeaders returns a middleware adding the configured headers before
// the handler runs. The request id header, when already set, is exposed to
// browser clients.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	static := [][2]string{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
	}
	if opt.EnablePolicy {
		static = append(static,
			[2]string{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()"},
			[2]string{"X-Permitted-Cross-Domain-Policies", "none"},
		)
	}
	if opt.NoStore {
		static = append(static,
			[2]string{"Cache-Control", "no-store"},
			[2]string{"Pragma", "no-cache"},
			[2]string{"Expires", "0"},
		)
	}

	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range static {
			h.Set(kv[0], kv[1])
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}
		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers once.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	cur := h.Get(key)
	if cur == "" {
		h.Set(key, name)
		return
	}
	for _, p := range strings.Split(cur, ",") {
		if strings.EqualFold(strings.TrimSpace(p), name) {
			return
		}
	}
	h.Set(key, cur+", "+name)
}

// isHTTPS reports whether r arrived over TLS directly or through a proxy
// that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

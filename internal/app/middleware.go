package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// MiddlewareStack installs the default middleware chain. Authentication sits
// in front of this service (reverse proxy), so the stack stays transport-only.
func MiddlewareStack(cfg *Config) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg != nil && cfg.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	requests := 120
	window := time.Minute
	if cfg != nil {
		if cfg.AppRequestTimeout > 0 {
			timeout = cfg.AppRequestTimeout
		}
		if cfg.RateLimitRequests > 0 {
			requests = cfg.RateLimitRequests
		}
		if cfg.RateLimitWindow > 0 {
			window = cfg.RateLimitWindow
		}
	}

	return []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		httprate.LimitByIP(requests, window),
		secureMiddleware.Handler,
	}
}

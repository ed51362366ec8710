package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"chatter/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
func CommonStack(cors middleware.CORSOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RealIP(),
		middleware.RequestID(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		middleware.CORS(cors),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(30 * time.Second),
	}
}

// Limited appends a rate limit to the common stack; an empty rate disables it
func Limited(cors middleware.CORSOptions, rate string) []func(http.Handler) http.Handler {
	mw := CommonStack(cors)
	if rate == "" {
		return mw
	}
	return append(mw, middleware.RateLimit(rate))
}

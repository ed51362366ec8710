package middleware

import (
	"net/http"

	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/logger"
	phttp "chatter/internal/platform/net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit throttles per client IP using a formatted rate such as "120-M".
// An unparseable rate disables limiting with a warning.
func RateLimit(formatted string) func(http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		logger.Named("http").Warn().Err(err).Str("rate", formatted).Msg("rate limit disabled")
		return func(next http.Handler) http.Handler { return next }
	}
	lim := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(lim,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			phttp.Handle(func(*http.Request) phttp.Response {
				return phttp.Error(perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded"))
			})(w, r)
		}),
	)
	return mw.Handler
}

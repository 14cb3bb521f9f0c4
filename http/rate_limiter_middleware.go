package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

func RateLimitMiddleware(
	limiter *RateLimiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		client, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			client = r.RemoteAddr
		}

		ok, retryAfter := limiter.Reserve(client)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			log.WithFields(log.Fields{
				"client":      client,
				"path":        r.URL.Path,
				"retry_after": seconds,
			}).Warn("Rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

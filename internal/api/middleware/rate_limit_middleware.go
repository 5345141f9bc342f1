package middleware

import (
	"net/http"

	"github.com/mira-tu/FinalFlower-sub001/internal/infra/ratelimit"
	"github.com/mira-tu/FinalFlower-sub001/internal/util"
)

// RateLimitMiddleware 已登入用 user id 當 key，否則用來源 IP
func RateLimitMiddleware(limiter ratelimit.ILimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + r.RemoteAddr
			if payload := util.GetTokenPayloadFromContext(r.Context()); payload != nil {
				key = "user:" + payload.UserID.String()
			}
			if !limiter.Allow(r.Context(), key) {
				w.Header().Set("Retry-After", "1")
				writeError(w, r, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

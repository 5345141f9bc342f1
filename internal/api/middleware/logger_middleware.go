package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/mira-tu/FinalFlower-sub001/internal/util"
	"github.com/rs/zerolog"
)

type StatusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func requestUser(r *http.Request) (string, string) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return "unknown", "anonymous"
	}
	return payload.UserID.String(), string(payload.Role)
}

// 記錄request 請求
// 有一起處理recover
func LoggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &StatusRecorder{ResponseWriter: w}
			start := time.Now()

			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					userID, role := requestUser(r)
					logger.Error().
						Str("request_id", util.GetRequestIDFromContext(r.Context())).
						Str("user_id", userID).
						Str("role", role).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", fmt.Sprintf("%v", err)).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					writeError(recorder, r, http.StatusInternalServerError, "internal server error")
				}

				userID, role := requestUser(r)
				logger.Info().
					Str("request_id", util.GetRequestIDFromContext(r.Context())).
					Str("user_id", userID).
					Str("role", role).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Int("status", recorder.Status()).
					Dur("elapsed", time.Since(start)).
					Msg("request completed")
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}

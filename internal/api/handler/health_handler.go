package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/rs/zerolog/log"
)

// Pinger 檢查相依服務是否可用
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// @Summary health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "ok"
// @Failure 503 {object} dto.HealthResponse "database unavailable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, dto.HealthResponse{Response: dto.Fail("database unavailable"), Status: "degraded"})
			return
		}
	}
	successJSON(w, r, http.StatusOK, dto.HealthResponse{Response: dto.OK(), Status: "ok"})
}

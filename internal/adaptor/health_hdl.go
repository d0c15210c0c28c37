package adaptor

import (
	"context"
	"net/http"
	"time"

	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

type HealthHandler struct {
	store Pinger
	log   *zap.Logger
}

func NewHealthHandler(store Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("Health check failed", zap.Error(err))
		utils.ResponseUnavailable(w, "Store unavailable")
		return
	}

	utils.ResponseSuccess(w, "ok", map[string]string{"status": "up"})
}

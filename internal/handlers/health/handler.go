package health

import (
	"net/http"

	"peakpath/config"
	"peakpath/infras/postgres"
	"peakpath/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	cfg *config.Config
	db  *postgres.Connection
}

func New(cfg *config.Config, db *postgres.Connection) Handler {
	return Handler{
		cfg: cfg,
		db:  db,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
	})
}

// Health reports readiness of the service and its storage.
// @Summary Health check
// @Description Report service readiness, including database connectivity.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[map[string]string] "Service is healthy"
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Read.PingContext(r.Context()); err != nil {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, map[string]string{
		"app":    h.cfg.App.Name,
		"status": "ok",
	})
}

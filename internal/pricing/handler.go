package pricing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/khudyi/premium-steli/internal/httpx"
	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/transport"
	"github.com/khudyi/premium-steli/internal/validation"
)

type Handler struct {
	val *validation.Validator
	log *slog.Logger
}

func NewHandler(val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{val: val, log: log}
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req EstimateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("estimate: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("estimate: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	est, err := Calculate(req)
	if err != nil {
		if errors.Is(err, ErrUnknownService) {
			log.Warn("estimate: unknown service", slog.String("service", req.Service))
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"service": "oneof"})
			return
		}
		log.Warn("estimate: invalid dimensions")
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"width": "gt"})
		return
	}

	transport.WriteJSON(w, http.StatusOK, est)
}

func (h *Handler) Tariffs(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tariffs":     Services(),
		"light_point": LightPointCost,
		"decor_meter": DecorCostPerMeter,
	})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}

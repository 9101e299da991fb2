package service

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/solfund/custody-middleware/pkg/app/errors"
	apphttp "github.com/solfund/custody-middleware/pkg/app/http"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers donation history endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/wallets/{campaignID}/donations", apphttp.HandleError(h.list))
	r.Get("/wallets/{campaignID}/stats", apphttp.HandleError(h.stats))
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) error {
	campaignID := chi.URLParam(r, "campaignID")
	if campaignID == "" {
		return apperrors.BadRequestError(nil, "campaign id is required")
	}

	resp, err := h.service.List(r.Context(), campaignID)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) stats(w http.ResponseWriter, r *http.Request) error {
	campaignID := chi.URLParam(r, "campaignID")
	if campaignID == "" {
		return apperrors.BadRequestError(nil, "campaign id is required")
	}

	resp, err := h.service.Stats(r.Context(), campaignID)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

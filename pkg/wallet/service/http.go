package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/solfund/custody-middleware/pkg/app/errors"
	apphttp "github.com/solfund/custody-middleware/pkg/app/http"
	"github.com/solfund/custody-middleware/pkg/campaign"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// base58_pubkey accepts a well-formed Solana public key.
	_ = v.RegisterValidation("base58_pubkey", func(fl validator.FieldLevel) bool {
		key, err := solana.PublicKeyFromBase58(fl.Field().String())
		return err == nil && !key.IsZero()
	})
	return v
}

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers HTTP endpoints for the wallet service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/wallets", apphttp.HandleError(h.create))
	r.Get("/wallets/{campaignID}", apphttp.HandleError(h.status))
	r.Post("/wallets/{campaignID}/redeem", apphttp.HandleError(h.redeem))
}

// create handles wallet provisioning requests
func (h *HTTP) create(w http.ResponseWriter, r *http.Request) error {
	var req campaign.CreateWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return apperrors.BadRequestError(err, "invalid wallet request")
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

// status handles custody account status requests
func (h *HTTP) status(w http.ResponseWriter, r *http.Request) error {
	campaignID := chi.URLParam(r, "campaignID")
	if campaignID == "" {
		return apperrors.BadRequestError(nil, "campaign id is required")
	}

	resp, err := h.service.Status(r.Context(), campaignID)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

// redeem handles payout requests authorized by a signed challenge
func (h *HTTP) redeem(w http.ResponseWriter, r *http.Request) error {
	campaignID := chi.URLParam(r, "campaignID")
	if campaignID == "" {
		return apperrors.BadRequestError(nil, "campaign id is required")
	}

	var req campaign.RedeemRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return apperrors.BadRequestError(err, "invalid redemption request")
	}

	resp, err := h.service.Redeem(r.Context(), campaignID, &req)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	return nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

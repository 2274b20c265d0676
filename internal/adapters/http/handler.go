package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/courierdesk/internal/application"
	"github.com/viralforge/courierdesk/internal/contracts"
	"github.com/viralforge/courierdesk/internal/domain"
)

type Handler struct{ service *application.Service }

func NewHandler(service *application.Service) *Handler { return &Handler{service: service} }

func (h *Handler) deliveryHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.DeliveryHistory(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req contracts.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	row, err := h.service.SubmitOrder(r.Context(), application.SubmitOrderInput{
		Invoice:          req.Invoice,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		CODAmount:        req.CODAmount,
		Note:             req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toEntryPayload(row))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListEntries(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toEntryPayloads(rows))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req contracts.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	row, err := h.service.UpdateEntryStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toEntryPayload(row))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	row, err := h.service.TrackEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toEntryPayload(row))
}

func (h *Handler) extractOrder(w http.ResponseWriter, r *http.Request) {
	var req contracts.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	out, err := h.service.ExtractOrder(r.Context(), req.RawText)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) saveCredentials(w http.ResponseWriter, r *http.Request) {
	var req contracts.SaveCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	if err := h.service.SaveCredentials(r.Context(), domain.Credentials{APIKey: req.APIKey, SecretKey: req.SecretKey}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) validateCredentials(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ValidateCredentials(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) clearCredentials(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCredentials(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func toEntryPayload(row domain.CourierEntry) contracts.EntryPayload {
	return contracts.EntryPayload{
		ID:               row.ID,
		Invoice:          row.Invoice,
		RecipientName:    row.RecipientName,
		RecipientPhone:   row.RecipientPhone,
		RecipientAddress: row.RecipientAddress,
		CODAmount:        row.CODAmount,
		Note:             row.Note,
		Status:           string(row.Status),
		ConsignmentID:    row.ConsignmentID,
		TrackingCode:     row.TrackingCode,
		CreatedAt:        row.CreatedAt.Format(time.RFC3339),
	}
}

func toEntryPayloads(rows []domain.CourierEntry) []contracts.EntryPayload {
	out := make([]contracts.EntryPayload, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntryPayload(row))
	}
	return out
}

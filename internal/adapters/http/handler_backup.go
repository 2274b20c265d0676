package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/viralforge/courierdesk/internal/contracts"
	"github.com/viralforge/courierdesk/internal/domain"
)

func (h *Handler) backupAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.BackupAuthURL()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"auth_url": url})
}

func (h *Handler) exchangeBackupCode(w http.ResponseWriter, r *http.Request) {
	var req contracts.ExchangeCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	if err := h.service.ExchangeBackupCode(r.Context(), req.Code); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"status": "authorized"})
}

func (h *Handler) uploadBackup(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.UploadBackup(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, file)
}

func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListBackups(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, files)
}

// restoreBackup accepts either a Drive file id or an inline entries payload
// from a locally saved backup document.
func (h *Handler) restoreBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		contracts.RestoreDriveRequest
		contracts.RestoreLocalRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid json body")
		return
	}
	if req.FileID != "" {
		out, err := h.service.RestoreFromDrive(r.Context(), req.FileID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, out)
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "file_id or entries required")
		return
	}
	out, err := h.service.ImportEntries(r.Context(), fromEntryPayloads(req.Entries))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.ExportData(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+domain.BackupFileName(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(doc)
}

func fromEntryPayloads(payloads []contracts.EntryPayload) []domain.CourierEntry {
	out := make([]domain.CourierEntry, 0, len(payloads))
	for _, p := range payloads {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			createdAt = time.Now()
		}
		out = append(out, domain.CourierEntry{
			ID:               p.ID,
			Invoice:          p.Invoice,
			RecipientName:    p.RecipientName,
			RecipientPhone:   p.RecipientPhone,
			RecipientAddress: p.RecipientAddress,
			CODAmount:        p.CODAmount,
			Note:             p.Note,
			Status:           domain.MapDeliveryStatus(p.Status),
			ConsignmentID:    p.ConsignmentID,
			TrackingCode:     p.TrackingCode,
			CreatedAt:        createdAt,
		})
	}
	return out
}

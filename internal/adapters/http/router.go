package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/courier/history", handler.deliveryHistory)

		r.Post("/orders", handler.submitOrder)
		r.Get("/orders", handler.listOrders)
		r.Patch("/orders/{id}/status", handler.updateOrderStatus)
		r.Delete("/orders/{id}", handler.deleteOrder)
		r.Get("/orders/{id}/track", handler.trackOrder)

		r.Get("/report", handler.report)
		r.Get("/report/export.csv", handler.exportReportCSV)

		r.Post("/extract", handler.extractOrder)

		r.Put("/credentials", handler.saveCredentials)
		r.Get("/credentials/validate", handler.validateCredentials)
		r.Delete("/credentials", handler.clearCredentials)

		r.Get("/backup/auth-url", handler.backupAuthURL)
		r.Post("/backup/exchange", handler.exchangeBackupCode)
		r.Post("/backup", handler.uploadBackup)
		r.Get("/backup/files", handler.listBackups)
		r.Post("/backup/restore", handler.restoreBackup)
		r.Get("/backup/export", handler.exportBackup)
	})
	return r
}

package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Notificações Handlers
// ============================================================

func listNotificationsHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /notificacoes")
		defer span.End()

		unreadOnly := r.URL.Query().Get("naoLidas") == "true"
		notifs, err := svc.ListNotifications(ctx, BackendTokenFromContext(r.Context()), unreadOnly)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, notifs)
	}
}

func markNotificationReadHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /notificacoes/{notifId}/lida")
		defer span.End()

		if err := svc.MarkNotificationRead(ctx, BackendTokenFromContext(r.Context()), chi.URLParam(r, "notifId")); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Preferências Handlers
// ============================================================

func getPreferencesHandler(svc *service.PreferenceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /preferencias")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Get(UserFromContext(r.Context())))
	}
}

func updatePreferencesHandler(svc *service.PreferenceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "PUT /preferencias")
		defer span.End()

		var prefs domain.Preferences
		if err := decodeJSON(r, &prefs); err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}

		saved, err := svc.Update(UserFromContext(r.Context()), prefs)
		if err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

func resetPreferencesHandler(svc *service.PreferenceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "DELETE /preferencias")
		defer span.End()

		prefs, err := svc.Reset(UserFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

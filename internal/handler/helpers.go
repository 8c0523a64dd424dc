package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

// sessionExpiredResponse carries the reason the frontend shows on the login
// page after being redirected.
type sessionExpiredResponse struct {
	Error          string `json:"error"`
	RedirectReason string `json:"redirectReason,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ErrValidation{Field: "body", Message: "JSON inválido"}
	}
	return nil
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return
}

// sessionRevoker drops a session after the backend rejected its token.
// *service.AuthService satisfies it.
type sessionRevoker interface {
	Invalidate(sessionID string)
}

// handleServiceError maps domain errors to HTTP responses. A session-expired
// error additionally revokes the session so the stale token cannot be reused.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, revoker sessionRevoker, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation
	var unauthorized *domain.ErrUnauthorized
	var sessionExpired *domain.ErrSessionExpired
	var circuitOpen *domain.ErrCircuitOpen
	var timeout *domain.ErrTimeout
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &sessionExpired):
		logger.Warn("session expired", zap.String("reason", sessionExpired.Reason))
		if revoker != nil {
			revoker.Invalidate(SessionIDFromContext(r.Context()))
		}
		writeJSON(w, http.StatusUnauthorized, sessionExpiredResponse{
			Error:          "sessão expirada",
			RedirectReason: sessionExpired.Reason,
		})
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unauthorized):
		logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &circuitOpen), resilience.IsCircuitOpen(err):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "serviço temporariamente indisponível")
	case errors.As(err, &timeout):
		logger.Error("request timeout", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &external):
		logger.Error("backend error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "falha ao falar com o serviço de pontos")
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Auth Handlers
// ============================================================

func loginHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/login")
		defer span.End()

		var req domain.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}

		resp, err := svc.Login(ctx, &req)
		if err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func registerHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /auth/register")
		defer span.End()

		var req domain.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}

		resp, err := svc.Register(ctx, &req)
		if err != nil {
			handleServiceError(w, r, err, nil, logger)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func logoutHandler(svc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /auth/logout")
		defer span.End()

		svc.Logout(SessionIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

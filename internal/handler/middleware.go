package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

// JWTAuthMiddleware validates Bearer tokens, resolves the session behind the
// sid claim and injects it into context. The backend bearer token never
// appears in any response; handlers read it via BackendTokenFromContext.
func JWTAuthMiddleware(authSvc *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Token de autenticação não fornecido")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			session, err := authSvc.ValidateAccessToken(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				var expired *domain.ErrSessionExpired
				if errors.As(err, &expired) {
					writeJSON(w, http.StatusUnauthorized, sessionExpiredResponse{
						Error:          "sessão expirada",
						RedirectReason: expired.Reason,
					})
					return
				}
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session from context.
func SessionFromContext(ctx context.Context) *domain.Session {
	v, _ := ctx.Value(sessionKey).(*domain.Session)
	return v
}

// SessionIDFromContext extracts the session id, or "" when unauthenticated.
func SessionIDFromContext(ctx context.Context) string {
	if s := SessionFromContext(ctx); s != nil {
		return s.ID
	}
	return ""
}

// BackendTokenFromContext extracts the backend bearer token for the session.
func BackendTokenFromContext(ctx context.Context) string {
	if s := SessionFromContext(ctx); s != nil {
		return s.BackendToken
	}
	return ""
}

// UserFromContext extracts the authenticated user's email.
func UserFromContext(ctx context.Context) string {
	if s := SessionFromContext(ctx); s != nil {
		return s.Email
	}
	return ""
}

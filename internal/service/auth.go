package service

import (
	"context"
	"fmt"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// AuthService brokers authentication between the frontend and the loyalty
// backend. The backend bearer token is kept server-side, keyed by a session
// id; the frontend only ever sees a signed access token carrying that id.
type AuthService struct {
	backend    port.AuthBackend
	sessions   port.Cache[domain.Session]
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(backend port.AuthBackend, sessions port.Cache[domain.Session], jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		backend:    backend,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login authenticates against the backend and opens a session.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	tok, err := s.backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.openSession(req.Email, tok.Token)
}

// Register creates an account on the backend and opens a session.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if req.Nome == "" {
		return nil, &domain.ErrValidation{Field: "nome", Message: "obrigatório"}
	}
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	tok, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.openSession(req.Email, tok.Token)
}

// openSession stores the backend token under a fresh session id and signs the
// access token handed to the frontend.
func (s *AuthService) openSession(email, backendToken string) (*domain.AuthResponse, error) {
	session := domain.Session{
		ID:           uuid.NewString(),
		BackendToken: backendToken,
		Email:        email,
		CreatedAt:    time.Now(),
	}
	s.sessions.Set(session.ID, session)

	now := time.Now()
	claims := jwt.MapClaims{
		"sid": session.ID,
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.sessionTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.sessions.Delete(session.ID)
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("session opened", zap.String("session_id", session.ID))

	return &domain.AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int(s.sessionTTL.Seconds()),
		Email:       email,
	}, nil
}

// ValidateAccessToken verifies the frontend access token and resolves the
// session behind it. Expired tokens and evicted sessions both surface as
// *domain.ErrSessionExpired so the frontend redirects to login.
func (s *AuthService) ValidateAccessToken(tokenString string) (*domain.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, &domain.ErrSessionExpired{Reason: "token inválido ou expirado"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &domain.ErrSessionExpired{Reason: "token inválido ou expirado"}
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, &domain.ErrSessionExpired{Reason: "token inválido ou expirado"}
	}

	session, found := s.sessions.Get(sid)
	if !found {
		return nil, &domain.ErrSessionExpired{Reason: "sessão encerrada"}
	}
	return &session, nil
}

// Logout drops the session so its backend token can no longer be used.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Invalidate drops a session after the backend rejected its token.
func (s *AuthService) Invalidate(sessionID string) {
	if sessionID == "" {
		return
	}
	s.sessions.Delete(sessionID)
	s.logger.Info("session invalidated", zap.String("session_id", sessionID))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return &domain.ErrValidation{Field: "email", Message: "obrigatório"}
	}
	if len(password) < 6 {
		return &domain.ErrValidation{Field: "senha", Message: "mínimo de 6 caracteres"}
	}
	return nil
}

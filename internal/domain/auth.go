package domain

import "time"

// ============================================================
// Auth & sessions
// ============================================================

// LoginRequest is the credentials payload forwarded to the backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// RegisterRequest is the registration payload forwarded to the backend.
type RegisterRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// BackendToken is what the loyalty backend returns from /auth/*.
type BackendToken struct {
	Token string `json:"token"`
}

// Session associates a frontend session with the backend bearer token it
// wraps. The backend token never leaves this service.
type Session struct {
	ID           string
	BackendToken string
	Email        string
	CreatedAt    time.Time
}

// AuthResponse is what the frontend receives after login/register.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	Email       string `json:"email,omitempty"`
}

// SessionClaims are the JWT claims inside the frontend access token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"sub"`
}

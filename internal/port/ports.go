// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete loyalty-backend adapter and infrastructure.
package port

import (
	"context"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
)

// BackendStore is the full surface of the external loyalty REST backend.
// Every call carries the caller's backend bearer token; the adapter maps a
// 401 response to *domain.ErrSessionExpired.
type BackendStore interface {
	// Cartões
	ListCards(ctx context.Context, token string) ([]domain.Cartao, error)
	GetCard(ctx context.Context, token, cardID string) (*domain.Cartao, error)
	CreateCard(ctx context.Context, token string, req *domain.CartaoRequest) (*domain.Cartao, error)
	UpdateCard(ctx context.Context, token, cardID string, req *domain.CartaoRequest) (*domain.Cartao, error)
	DeleteCard(ctx context.Context, token, cardID string) error

	// Saldos
	ListBalances(ctx context.Context, token string) ([]domain.Saldo, error)

	// Relatório
	GetReport(ctx context.Context, token string) (*domain.Relatorio, error)
	ExportReport(ctx context.Context, token, format string) ([]byte, string, error)

	// Programas
	ListPrograms(ctx context.Context, token string) ([]domain.Programa, error)
	GetProgram(ctx context.Context, token, programID string) (*domain.Programa, error)

	// Promoções
	ListActivePromotions(ctx context.Context, token string) ([]domain.Promocao, error)

	// Movimentações
	ListMovements(ctx context.Context, token string, page, pageSize int) ([]domain.Movimentacao, error)
	GetMovement(ctx context.Context, token, movementID string) (*domain.Movimentacao, error)
	CreateMovement(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error)
	UpdateMovement(ctx context.Context, token, movementID string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error)
	DeleteMovement(ctx context.Context, token, movementID string) error

	// Notificações
	ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]domain.Notificacao, error)
	MarkNotificationRead(ctx context.Context, token, notifID string) error
}

// AuthBackend is the external backend's /auth surface.
type AuthBackend interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.BackendToken, error)
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.BackendToken, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// PreferenceStore persists per-user preference blobs. Load always returns a
// complete object (missing keys defaulted); Save persists the whole object.
type PreferenceStore interface {
	Load(user string) (domain.Preferences, error)
	Save(user string, prefs domain.Preferences) error
	Delete(user string) error
}

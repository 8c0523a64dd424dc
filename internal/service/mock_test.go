package service_test

import (
	"context"

	"github.com/milhasapp/pontos-bff-go/internal/domain"

	"go.uber.org/zap"
)

// mockStore implements port.BackendStore with overridable func fields.
// Unset fields return zero values.
type mockStore struct {
	listCardsFunc            func(ctx context.Context, token string) ([]domain.Cartao, error)
	listBalancesFunc         func(ctx context.Context, token string) ([]domain.Saldo, error)
	getReportFunc            func(ctx context.Context, token string) (*domain.Relatorio, error)
	exportReportFunc         func(ctx context.Context, token, format string) ([]byte, string, error)
	listActivePromotionsFunc func(ctx context.Context, token string) ([]domain.Promocao, error)
	createMovementFunc       func(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error)
}

func (m *mockStore) ListCards(ctx context.Context, token string) ([]domain.Cartao, error) {
	if m.listCardsFunc != nil {
		return m.listCardsFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockStore) GetCard(ctx context.Context, token, cardID string) (*domain.Cartao, error) {
	return nil, &domain.ErrNotFound{Resource: "cartao", ID: cardID}
}

func (m *mockStore) CreateCard(ctx context.Context, token string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	return &domain.Cartao{ID: "new", Nome: req.Nome, Bandeira: req.Bandeira, Tipo: req.Tipo}, nil
}

func (m *mockStore) UpdateCard(ctx context.Context, token, cardID string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	return &domain.Cartao{ID: cardID, Nome: req.Nome, Bandeira: req.Bandeira, Tipo: req.Tipo}, nil
}

func (m *mockStore) DeleteCard(ctx context.Context, token, cardID string) error { return nil }

func (m *mockStore) ListBalances(ctx context.Context, token string) ([]domain.Saldo, error) {
	if m.listBalancesFunc != nil {
		return m.listBalancesFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockStore) GetReport(ctx context.Context, token string) (*domain.Relatorio, error) {
	if m.getReportFunc != nil {
		return m.getReportFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockStore) ExportReport(ctx context.Context, token, format string) ([]byte, string, error) {
	if m.exportReportFunc != nil {
		return m.exportReportFunc(ctx, token, format)
	}
	return []byte("id\n"), "text/csv", nil
}

func (m *mockStore) ListPrograms(ctx context.Context, token string) ([]domain.Programa, error) {
	return nil, nil
}

func (m *mockStore) GetProgram(ctx context.Context, token, programID string) (*domain.Programa, error) {
	return nil, &domain.ErrNotFound{Resource: "programa", ID: programID}
}

func (m *mockStore) ListActivePromotions(ctx context.Context, token string) ([]domain.Promocao, error) {
	if m.listActivePromotionsFunc != nil {
		return m.listActivePromotionsFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockStore) ListMovements(ctx context.Context, token string, page, pageSize int) ([]domain.Movimentacao, error) {
	return nil, nil
}

func (m *mockStore) GetMovement(ctx context.Context, token, movementID string) (*domain.Movimentacao, error) {
	return nil, &domain.ErrNotFound{Resource: "movimentacao", ID: movementID}
}

func (m *mockStore) CreateMovement(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	if m.createMovementFunc != nil {
		return m.createMovementFunc(ctx, token, req)
	}
	return &domain.Movimentacao{ID: "new", CartaoID: req.CartaoID, ProgramaID: req.ProgramaID, Valor: req.Valor}, nil
}

func (m *mockStore) UpdateMovement(ctx context.Context, token, movementID string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	return &domain.Movimentacao{ID: movementID, CartaoID: req.CartaoID, ProgramaID: req.ProgramaID, Valor: req.Valor}, nil
}

func (m *mockStore) DeleteMovement(ctx context.Context, token, movementID string) error { return nil }

func (m *mockStore) ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]domain.Notificacao, error) {
	return nil, nil
}

func (m *mockStore) MarkNotificationRead(ctx context.Context, token, notifID string) error {
	return nil
}

// mockAuthBackend implements port.AuthBackend.
type mockAuthBackend struct {
	loginFunc    func(ctx context.Context, req *domain.LoginRequest) (*domain.BackendToken, error)
	registerFunc func(ctx context.Context, req *domain.RegisterRequest) (*domain.BackendToken, error)
}

func (m *mockAuthBackend) Login(ctx context.Context, req *domain.LoginRequest) (*domain.BackendToken, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &domain.BackendToken{Token: "backend-token"}, nil
}

func (m *mockAuthBackend) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.BackendToken, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return &domain.BackendToken{Token: "backend-token"}, nil
}

// mockCache implements port.Cache with a plain map, no TTL.
type mockCache[T any] struct {
	items map[string]T
}

func newMockCache[T any]() *mockCache[T] {
	return &mockCache[T]{items: make(map[string]T)}
}

func (c *mockCache[T]) Get(key string) (T, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *mockCache[T]) Set(key string, value T) { c.items[key] = value }

func (c *mockCache[T]) Delete(key string) { delete(c.items, key) }

func testLogger() *zap.Logger { return zap.NewNop() }

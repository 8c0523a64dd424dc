package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/handler"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// stubStore serves canned data for router tests.
type stubStore struct {
	failBalances bool
	expired      bool
}

func (s *stubStore) ListCards(ctx context.Context, token string) ([]domain.Cartao, error) {
	return []domain.Cartao{{ID: "c1", Nome: "Platinum", Bandeira: "Visa", Tipo: "credito"}}, nil
}

func (s *stubStore) GetCard(ctx context.Context, token, cardID string) (*domain.Cartao, error) {
	if cardID != "c1" {
		return nil, &domain.ErrNotFound{Resource: "cartao", ID: cardID}
	}
	return &domain.Cartao{ID: "c1", Nome: "Platinum"}, nil
}

func (s *stubStore) CreateCard(ctx context.Context, token string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	return &domain.Cartao{ID: "new", Nome: req.Nome, Bandeira: req.Bandeira, Tipo: req.Tipo}, nil
}

func (s *stubStore) UpdateCard(ctx context.Context, token, cardID string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	return &domain.Cartao{ID: cardID, Nome: req.Nome}, nil
}

func (s *stubStore) DeleteCard(ctx context.Context, token, cardID string) error { return nil }

func (s *stubStore) ListBalances(ctx context.Context, token string) ([]domain.Saldo, error) {
	if s.expired {
		return nil, &domain.ErrSessionExpired{Reason: "token rejeitado"}
	}
	if s.failBalances {
		return nil, &domain.ErrExternalService{Service: "saldo"}
	}
	return []domain.Saldo{
		{Pontos: domain.FlexFloat(500), Programa: &domain.Programa{ID: "livelo", Nome: "Livelo"}},
		{Pontos: domain.FlexFloat(1200), Programa: &domain.Programa{ID: "smiles", Nome: "Smiles"}},
	}, nil
}

func (s *stubStore) GetReport(ctx context.Context, token string) (*domain.Relatorio, error) {
	return &domain.Relatorio{
		SaldoGlobal: domain.FlexFloat(1700),
		EvolucaoMensal: []domain.EvolucaoMensal{
			{Ano: 2026, Mes: 7, Total: domain.FlexFloat(900)},
			{Ano: 2026, Mes: 8, Total: domain.FlexFloat(800)},
		},
	}, nil
}

func (s *stubStore) ExportReport(ctx context.Context, token, format string) ([]byte, string, error) {
	return []byte("programa,pontos\n"), "text/csv", nil
}

func (s *stubStore) ListPrograms(ctx context.Context, token string) ([]domain.Programa, error) {
	return []domain.Programa{{ID: "livelo", Nome: "Livelo"}}, nil
}

func (s *stubStore) GetProgram(ctx context.Context, token, programID string) (*domain.Programa, error) {
	return &domain.Programa{ID: programID, Nome: "Livelo"}, nil
}

func (s *stubStore) ListActivePromotions(ctx context.Context, token string) ([]domain.Promocao, error) {
	return []domain.Promocao{{
		ID:            "p1",
		ProgramaID:    "livelo",
		Titulo:        "Dobro de pontos",
		PontosPorReal: decimal.NewFromInt(2),
		Inicio:        time.Now().Add(-time.Hour),
		Fim:           time.Now().Add(time.Hour),
		Status:        "ativa",
	}}, nil
}

func (s *stubStore) ListMovements(ctx context.Context, token string, page, pageSize int) ([]domain.Movimentacao, error) {
	return []domain.Movimentacao{}, nil
}

func (s *stubStore) GetMovement(ctx context.Context, token, movementID string) (*domain.Movimentacao, error) {
	return nil, &domain.ErrNotFound{Resource: "movimentacao", ID: movementID}
}

func (s *stubStore) CreateMovement(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	return &domain.Movimentacao{ID: "m1", CartaoID: req.CartaoID, ProgramaID: req.ProgramaID, Valor: req.Valor}, nil
}

func (s *stubStore) UpdateMovement(ctx context.Context, token, movementID string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	return &domain.Movimentacao{ID: movementID}, nil
}

func (s *stubStore) DeleteMovement(ctx context.Context, token, movementID string) error { return nil }

func (s *stubStore) ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]domain.Notificacao, error) {
	return []domain.Notificacao{}, nil
}

func (s *stubStore) MarkNotificationRead(ctx context.Context, token, notifID string) error {
	return nil
}

type stubAuthBackend struct{}

func (s *stubAuthBackend) Login(ctx context.Context, req *domain.LoginRequest) (*domain.BackendToken, error) {
	if req.Password != "secret1" {
		return nil, &domain.ErrUnauthorized{Message: "credenciais inválidas"}
	}
	return &domain.BackendToken{Token: "backend-tok"}, nil
}

func (s *stubAuthBackend) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.BackendToken, error) {
	return &domain.BackendToken{Token: "backend-tok"}, nil
}

type mapCache[T any] struct{ items map[string]T }

func newMapCache[T any]() *mapCache[T] { return &mapCache[T]{items: make(map[string]T)} }

func (c *mapCache[T]) Get(key string) (T, bool) { v, ok := c.items[key]; return v, ok }
func (c *mapCache[T]) Set(key string, value T)  { c.items[key] = value }
func (c *mapCache[T]) Delete(key string)        { delete(c.items, key) }

type mapPrefStore struct{ items map[string]domain.Preferences }

func (p *mapPrefStore) Load(user string) (domain.Preferences, error) {
	if v, ok := p.items[user]; ok {
		return v, nil
	}
	return domain.DefaultPreferences(), nil
}

func (p *mapPrefStore) Save(user string, prefs domain.Preferences) error {
	p.items[user] = prefs
	return nil
}

func (p *mapPrefStore) Delete(user string) error {
	delete(p.items, user)
	return nil
}

func newTestRouter(store *stubStore) http.Handler {
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authSvc := service.NewAuthService(&stubAuthBackend{}, newMapCache[domain.Session](), "test-secret", time.Hour, logger)

	svcs := handler.Services{
		Dashboard:   service.NewDashboardService(store, metrics, logger),
		Loyalty:     service.NewLoyaltyService(store, metrics, logger),
		Promotions:  service.NewPromotionService(store, newMapCache[[]domain.Promocao](), metrics, logger),
		Reports:     service.NewReportService(store, resilience.NewBulkhead(2), metrics, logger),
		Auth:        authSvc,
		Preferences: service.NewPreferenceService(&mapPrefStore{items: make(map[string]domain.Preferences)}, logger),
	}
	return handler.NewRouter(svcs, metrics, logger)
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	body := `{"email":"ana@test.com","senha":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp domain.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken
}

func authedRequest(method, target, token string, body string) *http.Request {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestDashboard_RequiresAuth(t *testing.T) {
	router := newTestRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestDashboard_Success(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/dashboard", token, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Dashboard struct {
			TotalPoints    float64 `json:"totalPoints"`
			ProgramSummary []struct {
				Label string  `json:"label"`
				Value float64 `json:"value"`
			} `json:"programSummary"`
		} `json:"dashboard"`
		Cartoes []domain.Cartao `json:"cartoes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Dashboard.TotalPoints != 1700 {
		t.Errorf("totalPoints = %v", resp.Dashboard.TotalPoints)
	}
	if len(resp.Dashboard.ProgramSummary) != 2 {
		t.Errorf("programSummary length = %d", len(resp.Dashboard.ProgramSummary))
	}
	if len(resp.Cartoes) != 1 {
		t.Errorf("cartoes length = %d", len(resp.Cartoes))
	}
}

func TestDashboard_BackendFailure(t *testing.T) {
	router := newTestRouter(&stubStore{failBalances: true})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/dashboard", token, ""))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestDashboard_SessionExpiredRevokesSession(t *testing.T) {
	store := &stubStore{}
	router := newTestRouter(store)
	token := login(t, router)

	store.expired = true
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/dashboard", token, ""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp struct {
		RedirectReason string `json:"redirectReason"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RedirectReason != "token rejeitado" {
		t.Errorf("redirectReason = %q", resp.RedirectReason)
	}

	// Session was revoked: even with a healthy backend the token is dead.
	store.expired = false
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/dashboard", token, ""))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after revocation, got %d", rec.Code)
	}
}

func TestCreateCard_ValidationError(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/v1/cartoes", token, `{"bandeira":"Visa","tipo":"credito"}`)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExportReport_Headers(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/relatorios/export?formato=csv", token, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	wantName := "relatorio-pontos-" + time.Now().Format("2006-01-02") + ".csv"
	if !strings.Contains(cd, wantName) {
		t.Errorf("content disposition = %q, want filename %q", cd, wantName)
	}
}

func TestGetReport_IncludesChartGeometry(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/relatorios", token, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Relatorio struct {
			SaldoGlobal float64 `json:"saldoGlobal"`
		} `json:"relatorio"`
		MonthlyChart domain.ChartGeometry `json:"monthlyChart"`
		HistoryChart domain.ChartGeometry `json:"historyChart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Relatorio.SaldoGlobal != 1700 {
		t.Errorf("saldoGlobal = %v", resp.Relatorio.SaldoGlobal)
	}
	if resp.MonthlyChart.Line == "" || resp.MonthlyChart.Area == "" {
		t.Errorf("monthly chart geometry missing: %+v", resp.MonthlyChart)
	}
	// Two months on the 110x60 report canvas, lowest value at the bottom pad.
	if !strings.HasPrefix(resp.MonthlyChart.Line, "0,") {
		t.Errorf("monthly line = %q", resp.MonthlyChart.Line)
	}
}

func TestPreviewMovement(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/v1/movimentacoes/preview", token, `{"programaId":"livelo","valor":100}`)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ProgramaID string          `json:"programaId"`
		Pontos     decimal.Decimal `json:"pontosEstimados"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ProgramaID != "livelo" {
		t.Errorf("programaId = %q", resp.ProgramaID)
	}
	// The active promotion doubles the base rate.
	if !resp.Pontos.Equal(decimal.NewFromInt(200)) {
		t.Errorf("pontosEstimados = %s, want 200", resp.Pontos)
	}
}

func TestPreviewMovement_BaseRateWithoutPromotion(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/v1/movimentacoes/preview", token, `{"programaId":"smiles","valor":100}`)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Pontos decimal.Decimal `json:"pontosEstimados"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Pontos.Equal(decimal.NewFromInt(100)) {
		t.Errorf("pontosEstimados = %s, want 100", resp.Pontos)
	}
}

func TestPreviewMovement_ValidationError(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/v1/movimentacoes/preview", token, `{"valor":100}`)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	// Defaults first.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/preferencias", token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefs.Theme != "system" {
		t.Errorf("default theme = %q", prefs.Theme)
	}

	// Update.
	rec = httptest.NewRecorder()
	body := `{"reduceMotion":true,"hideValues":true,"theme":"dark","notifications":{"promocoes":false,"movimentacoes":true,"resumoMensal":true}}`
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/v1/preferencias", token, body))
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Invalid theme rejected.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/v1/preferencias", token, `{"theme":"neon"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid theme: expected 400, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/auth/logout", token, ""))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/dashboard", token, ""))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestMetricsSummary(t *testing.T) {
	router := newTestRouter(&stubStore{})
	token := login(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/metrics/summary", token, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summary domain.ServiceMetrics
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

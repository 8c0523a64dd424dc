// Package domain holds the DTOs exchanged with the loyalty backend and the
// derived view-model types served to the frontend. All server-backed entities
// are owned by the backend; this service holds transient copies only.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Cartões
// ============================================================

// Cartao is a registered payment card, optionally linked to loyalty programs.
type Cartao struct {
	ID           string     `json:"id"`
	Nome         string     `json:"nome"`
	Bandeira     string     `json:"bandeira"` // Visa, Mastercard, Elo, Amex
	Tipo         string     `json:"tipo"`     // credito, debito, multiplo
	NumeroMask   string     `json:"numeroMascarado"`
	Validade     string     `json:"validade"` // MM/AA as the backend sends it
	Status       string     `json:"status"`   // valido, vencido, bloqueado
	Programas    []Programa `json:"programas,omitempty"`
	CriadoEm     *time.Time `json:"criadoEm,omitempty"`
	AtualizadoEm *time.Time `json:"atualizadoEm,omitempty"`
}

// CartaoRequest is the payload to create or update a card.
type CartaoRequest struct {
	Nome        string   `json:"nome"`
	Bandeira    string   `json:"bandeira"`
	Tipo        string   `json:"tipo"`
	NumeroMask  string   `json:"numeroMascarado"`
	Validade    string   `json:"validade"`
	ProgramaIDs []string `json:"programaIds,omitempty"`
}

// ============================================================
// Programas e Promoções
// ============================================================

// Programa is a loyalty/rewards scheme points accumulate in.
type Programa struct {
	ID        string     `json:"id"`
	Nome      string     `json:"nome"`
	Descricao string     `json:"descricao,omitempty"`
	Promocoes []Promocao `json:"promocoes,omitempty"`
}

// Promocao is a points-multiplier promotion attached to a program.
type Promocao struct {
	ID            string          `json:"id"`
	ProgramaID    string          `json:"programaId"`
	Titulo        string          `json:"titulo"`
	Descricao     string          `json:"descricao,omitempty"`
	PontosPorReal decimal.Decimal `json:"pontosPorReal"`
	Inicio        time.Time       `json:"inicio"`
	Fim           time.Time       `json:"fim"`
	Status        string          `json:"status"` // ativa, encerrada, agendada
}

// Ativa reports whether the promotion is running at the given instant.
func (p Promocao) Ativa(now time.Time) bool {
	if p.Status != "ativa" {
		return false
	}
	return !now.Before(p.Inicio) && !now.After(p.Fim)
}

// ============================================================
// Saldos
// ============================================================

// Saldo is the current point total held in one program. The backend returns
// one row per (user, program) pair; merging of duplicate programs is this
// service's concern (MergeBalancesByProgram), not the backend's.
type Saldo struct {
	ID       string    `json:"id"`
	Pontos   FlexFloat `json:"pontos"`
	Programa *Programa `json:"programa,omitempty"`
	// Older backend versions send only the id instead of the nested object.
	ProgramaID string `json:"programaId,omitempty"`
}

// ProgramName returns the program display name regardless of which shape the
// backend used for the association.
func (s Saldo) ProgramName() string {
	if s.Programa != nil && s.Programa.Nome != "" {
		return s.Programa.Nome
	}
	return s.ProgramaID
}

// ProgramKey returns the merge key for the balance row.
func (s Saldo) ProgramKey() string {
	if s.Programa != nil && s.Programa.ID != "" {
		return s.Programa.ID
	}
	return s.ProgramaID
}

// ============================================================
// Relatório
// ============================================================

// Relatorio is the backend-computed aggregate snapshot the dashboard feeds
// from. This service never recomputes the backend's aggregates, it only
// reshapes them for charting.
type Relatorio struct {
	SaldoGlobal     FlexFloat        `json:"saldoGlobal"`
	PontosPorCartao []PontosCartao   `json:"pontosPorCartao"`
	EvolucaoMensal  []EvolucaoMensal `json:"evolucaoMensal"`
	Historico       []HistoricoItem  `json:"historico"`
}

// PontosCartao is the per-card point total inside the report.
type PontosCartao struct {
	CartaoID   string    `json:"cartaoId"`
	CartaoNome string    `json:"cartaoNome"`
	Pontos     FlexFloat `json:"pontos"`
}

// EvolucaoMensal is one month of the report's evolution series.
type EvolucaoMensal struct {
	Ano   int       `json:"ano"`
	Mes   int       `json:"mes"` // 1..12
	Total FlexFloat `json:"total"`
}

// HistoricoItem is one row of the report's flat movement history.
type HistoricoItem struct {
	ID       string    `json:"id"`
	Programa string    `json:"programa"`
	Pontos   FlexFloat `json:"pontos"`
	Data     string    `json:"data"` // RFC-3339 or YYYY-MM-DD
	Status   string    `json:"status,omitempty"`
}

// ============================================================
// Movimentações
// ============================================================

// MovimentacaoStatus carries the status enum plus the backend's reason text.
type MovimentacaoStatus struct {
	Codigo string `json:"codigo"` // pendente, confirmada, cancelada
	Motivo string `json:"motivo,omitempty"`
}

// Anexo is a receipt attachment reference. Upload/download bytes are handled
// by the backend; only metadata passes through here.
type Anexo struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	URL  string `json:"url"`
}

// Movimentacao is a single point-earning or point-spending transaction.
type Movimentacao struct {
	ID             string             `json:"id"`
	CartaoID       string             `json:"cartaoId"`
	CartaoNome     string             `json:"cartaoNome,omitempty"`
	ProgramaID     string             `json:"programaId"`
	ProgramaNome   string             `json:"programaNome,omitempty"`
	Valor          decimal.Decimal    `json:"valor"`
	Pontos         FlexFloat          `json:"pontos"`
	DataOcorrencia time.Time          `json:"dataOcorrencia"`
	Status         MovimentacaoStatus `json:"status"`
	Anexos         []Anexo            `json:"anexos,omitempty"`
}

// MovimentacaoRequest is the payload to create or update a movement.
type MovimentacaoRequest struct {
	CartaoID       string          `json:"cartaoId"`
	ProgramaID     string          `json:"programaId"`
	Valor          decimal.Decimal `json:"valor"`
	DataOcorrencia time.Time       `json:"dataOcorrencia"`
}

// MovimentacaoPreviewRequest asks how many points a purchase of the given
// value would earn in a program before the movement is created.
type MovimentacaoPreviewRequest struct {
	ProgramaID string          `json:"programaId"`
	Valor      decimal.Decimal `json:"valor"`
}

// MovimentacaoPreview is the estimated outcome of a purchase.
type MovimentacaoPreview struct {
	ProgramaID string          `json:"programaId"`
	Valor      decimal.Decimal `json:"valor"`
	Pontos     decimal.Decimal `json:"pontosEstimados"`
}

// ============================================================
// Notificações
// ============================================================

// Notificacao is an in-app notification row.
type Notificacao struct {
	ID       string     `json:"id"`
	Titulo   string     `json:"titulo"`
	Corpo    string     `json:"corpo"`
	Tipo     string     `json:"tipo"` // promocao, movimentacao, sistema
	Lida     bool       `json:"lida"`
	LidaEm   *time.Time `json:"lidaEm,omitempty"`
	CriadaEm time.Time  `json:"criadaEm"`
}

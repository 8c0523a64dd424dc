package domain

import "time"

// ============================================================
// Dashboard view-model (derived, never persisted)
// ============================================================

// SeriesPoint is one chartable point: a display label plus the numeric value.
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthlyPoint is a SeriesPoint anchored to the first day of its month.
type MonthlyPoint struct {
	Label string    `json:"label"`
	Value float64   `json:"value"`
	Date  time.Time `json:"date"`
}

// ChartGeometry carries precomputed SVG coordinate strings so the frontend
// renders polylines/polygons without redoing the layout math.
type ChartGeometry struct {
	Line string `json:"line"`
	Area string `json:"area"`
}

// Dashboard is the view-model the dashboard page renders from. Every field is
// derived from the raw report/balance DTOs; empty inputs degrade to zeros and
// empty slices, never nil.
type Dashboard struct {
	TotalPoints     float64         `json:"totalPoints"`
	ProgramSummary  []SeriesPoint   `json:"programSummary"`
	PontosPorCartao []PontosCartao  `json:"pontosPorCartao"`
	Historico       []HistoricoItem `json:"historico"`
	MonthlyPoints   []MonthlyPoint  `json:"monthlyPoints"`
	HistorySeries   []SeriesPoint   `json:"historySeries"`
	MonthlyChart    ChartGeometry   `json:"monthlyChart"`
	HistoryChart    ChartGeometry   `json:"historyChart"`
}

// DashboardData bundles the raw collections the dashboard endpoint loads
// before derivation.
type DashboardData struct {
	Cards     []Cartao
	Saldos    []Saldo
	Relatorio *Relatorio
}

// ProgramBalance is one merged balance row on the programs page.
type ProgramBalance struct {
	ProgramaID string  `json:"programaId"`
	Nome       string  `json:"nome"`
	Pontos     float64 `json:"pontos"`
}

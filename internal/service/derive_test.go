package service_test

import (
	"testing"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saldo(id, nome string, pontos float64) domain.Saldo {
	return domain.Saldo{
		ID:       id + "-saldo",
		Pontos:   domain.FlexFloat(pontos),
		Programa: &domain.Programa{ID: id, Nome: nome},
	}
}

func TestBuildDashboard_TwoPrograms(t *testing.T) {
	saldos := []domain.Saldo{
		saldo("livelo", "Livelo", 500),
		saldo("smiles", "Smiles", 1200),
	}
	relatorio := &domain.Relatorio{
		SaldoGlobal: domain.FlexFloat(1700),
		PontosPorCartao: []domain.PontosCartao{
			{CartaoID: "c1", CartaoNome: "Platinum", Pontos: domain.FlexFloat(1700)},
		},
		EvolucaoMensal: []domain.EvolucaoMensal{
			{Ano: 2026, Mes: 6, Total: domain.FlexFloat(400)},
			{Ano: 2026, Mes: 7, Total: domain.FlexFloat(600)},
			{Ano: 2026, Mes: 8, Total: domain.FlexFloat(700)},
		},
		Historico: []domain.HistoricoItem{
			{ID: "h1", Programa: "Livelo", Pontos: domain.FlexFloat(200), Data: "2026-08-10"},
			{ID: "h2", Programa: "Smiles", Pontos: domain.FlexFloat(300), Data: "2026-08-12"},
		},
	}

	d := service.BuildDashboard(relatorio, saldos)

	assert.Equal(t, float64(1700), d.TotalPoints)

	require.Len(t, d.ProgramSummary, 2)
	assert.Equal(t, "Livelo", d.ProgramSummary[0].Label)
	assert.Equal(t, float64(500), d.ProgramSummary[0].Value)
	assert.Equal(t, "Smiles", d.ProgramSummary[1].Label)
	assert.Equal(t, float64(1200), d.ProgramSummary[1].Value)

	require.Len(t, d.MonthlyPoints, 3)
	assert.Equal(t, []string{"jun", "jul", "ago"}, []string{
		d.MonthlyPoints[0].Label, d.MonthlyPoints[1].Label, d.MonthlyPoints[2].Label,
	})

	require.Len(t, d.HistorySeries, 2)
	assert.Equal(t, "10 ago", d.HistorySeries[0].Label)
	assert.Equal(t, "12 ago", d.HistorySeries[1].Label)

	assert.NotEmpty(t, d.MonthlyChart.Line)
	assert.NotEmpty(t, d.MonthlyChart.Area)
	assert.NotEmpty(t, d.HistoryChart.Line)
}

func TestBuildDashboard_NilReport(t *testing.T) {
	d := service.BuildDashboard(nil, nil)

	assert.Equal(t, float64(0), d.TotalPoints)
	assert.NotNil(t, d.ProgramSummary)
	assert.NotNil(t, d.PontosPorCartao)
	assert.NotNil(t, d.Historico)
	assert.NotNil(t, d.MonthlyPoints)
	assert.NotNil(t, d.HistorySeries)
	assert.Empty(t, d.ProgramSummary)
	assert.Empty(t, d.MonthlyPoints)
}

func TestBuildDashboard_MonthlyWindowKeepsLastSeven(t *testing.T) {
	// Nine months, January through September, shuffled on purpose.
	evolucao := []domain.EvolucaoMensal{
		{Ano: 2026, Mes: 9, Total: domain.FlexFloat(90)},
		{Ano: 2026, Mes: 1, Total: domain.FlexFloat(10)},
		{Ano: 2026, Mes: 5, Total: domain.FlexFloat(50)},
		{Ano: 2026, Mes: 2, Total: domain.FlexFloat(20)},
		{Ano: 2026, Mes: 7, Total: domain.FlexFloat(70)},
		{Ano: 2026, Mes: 3, Total: domain.FlexFloat(30)},
		{Ano: 2026, Mes: 8, Total: domain.FlexFloat(80)},
		{Ano: 2026, Mes: 4, Total: domain.FlexFloat(40)},
		{Ano: 2026, Mes: 6, Total: domain.FlexFloat(60)},
	}
	d := service.BuildDashboard(&domain.Relatorio{EvolucaoMensal: evolucao}, nil)

	require.Len(t, d.MonthlyPoints, 7)
	assert.Equal(t, "mar", d.MonthlyPoints[0].Label)
	assert.Equal(t, "set", d.MonthlyPoints[6].Label)
	assert.Equal(t, float64(30), d.MonthlyPoints[0].Value)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d.MonthlyPoints[0].Date)
}

func TestBuildDashboard_SkipsInvalidMonths(t *testing.T) {
	evolucao := []domain.EvolucaoMensal{
		{Ano: 0, Mes: 5, Total: domain.FlexFloat(50)},
		{Ano: 2026, Mes: 0, Total: domain.FlexFloat(60)},
		{Ano: 2026, Mes: 13, Total: domain.FlexFloat(70)},
		{Ano: 2026, Mes: 4, Total: domain.FlexFloat(40)},
	}
	d := service.BuildDashboard(&domain.Relatorio{EvolucaoMensal: evolucao}, nil)

	require.Len(t, d.MonthlyPoints, 1)
	assert.Equal(t, "abr", d.MonthlyPoints[0].Label)
}

func TestBuildDashboard_HistoryDropsUnparsableDates(t *testing.T) {
	historico := []domain.HistoricoItem{
		{ID: "ok1", Pontos: domain.FlexFloat(10), Data: "2026-08-01"},
		{ID: "bad", Pontos: domain.FlexFloat(20), Data: "ontem"},
		{ID: "ok2", Pontos: domain.FlexFloat(30), Data: "2026-08-03T10:00:00Z"},
		{ID: "empty", Pontos: domain.FlexFloat(40), Data: ""},
	}
	d := service.BuildDashboard(&domain.Relatorio{Historico: historico}, nil)

	require.Len(t, d.HistorySeries, 2)
	assert.Equal(t, float64(10), d.HistorySeries[0].Value)
	assert.Equal(t, float64(30), d.HistorySeries[1].Value)
	// Raw history passes through untouched, bad dates included.
	assert.Len(t, d.Historico, 4)
}

func TestBuildDashboard_HistoryWindowKeepsLastThirty(t *testing.T) {
	historico := make([]domain.HistoricoItem, 0, 40)
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 40; i++ {
		historico = append(historico, domain.HistoricoItem{
			ID:     "h",
			Pontos: domain.FlexFloat(float64(i)),
			Data:   base.AddDate(0, 0, i).Format("2006-01-02"),
		})
	}
	d := service.BuildDashboard(&domain.Relatorio{Historico: historico}, nil)

	require.Len(t, d.HistorySeries, 30)
	assert.Equal(t, float64(10), d.HistorySeries[0].Value)
	assert.Equal(t, float64(39), d.HistorySeries[29].Value)
}

func TestReportCharts(t *testing.T) {
	relatorio := &domain.Relatorio{
		EvolucaoMensal: []domain.EvolucaoMensal{
			{Ano: 2026, Mes: 7, Total: domain.FlexFloat(0)},
			{Ano: 2026, Mes: 8, Total: domain.FlexFloat(42)},
		},
		Historico: []domain.HistoricoItem{
			{ID: "h1", Data: "2026-08-10", Pontos: domain.FlexFloat(0)},
			{ID: "h2", Data: "2026-08-12", Pontos: domain.FlexFloat(42)},
		},
	}

	monthly, history := service.ReportCharts(relatorio)

	// Two values 0 and 42 on the 110x60 report canvas: bottom pad then top pad.
	assert.Equal(t, "0,54 110,12", monthly.Line)
	assert.Equal(t, "0,60 0,54 110,12 110,60", monthly.Area)
	assert.Equal(t, "0,54 110,12", history.Line)
}

func TestReportCharts_NilReport(t *testing.T) {
	monthly, history := service.ReportCharts(nil)

	assert.Empty(t, monthly.Line)
	assert.Empty(t, monthly.Area)
	assert.Empty(t, history.Line)
}

func TestMergeBalancesByProgram(t *testing.T) {
	saldos := []domain.Saldo{
		saldo("livelo", "Livelo", 500),
		saldo("smiles", "Smiles", 1200),
		saldo("livelo", "Livelo", 300),
	}

	merged := service.MergeBalancesByProgram(saldos)

	require.Len(t, merged, 2)
	assert.Equal(t, "livelo", merged[0].ProgramaID)
	assert.Equal(t, float64(800), merged[0].Pontos)
	assert.Equal(t, "smiles", merged[1].ProgramaID)
	assert.Equal(t, float64(1200), merged[1].Pontos)
}

func TestMergeBalancesByProgram_FallsBackToProgramID(t *testing.T) {
	saldos := []domain.Saldo{
		{ID: "s1", Pontos: domain.FlexFloat(100), ProgramaID: "latam"},
		{ID: "s2", Pontos: domain.FlexFloat(50), ProgramaID: "latam"},
	}

	merged := service.MergeBalancesByProgram(saldos)

	require.Len(t, merged, 1)
	assert.Equal(t, "latam", merged[0].ProgramaID)
	assert.Equal(t, "latam", merged[0].Nome)
	assert.Equal(t, float64(150), merged[0].Pontos)
}

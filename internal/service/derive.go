package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/chart"
	"github.com/milhasapp/pontos-bff-go/internal/domain"
)

// monthShort are the pt-BR abbreviated month names used for chart labels.
var monthShort = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// How much of each series the charts show: the monthly evolution keeps the
// most recent 7 months, the movement history the most recent 30 entries.
const (
	monthlyWindow = 7
	historyWindow = 30
)

// BuildDashboard derives the chartable view-model from the raw report and
// balance DTOs. It is a total function: nil report and empty balances degrade
// to zeros and empty slices, and it never returns nil slices.
func BuildDashboard(relatorio *domain.Relatorio, saldos []domain.Saldo) domain.Dashboard {
	d := domain.Dashboard{
		ProgramSummary:  make([]domain.SeriesPoint, 0, len(saldos)),
		PontosPorCartao: []domain.PontosCartao{},
		Historico:       []domain.HistoricoItem{},
		MonthlyPoints:   []domain.MonthlyPoint{},
		HistorySeries:   []domain.SeriesPoint{},
	}

	// One summary entry per balance row, insertion order, no merging —
	// merging duplicate programs is the programs page's concern.
	for _, s := range saldos {
		d.ProgramSummary = append(d.ProgramSummary, domain.SeriesPoint{
			Label: s.ProgramName(),
			Value: s.Pontos.Float64(),
		})
	}

	if relatorio == nil {
		return d
	}

	d.TotalPoints = relatorio.SaldoGlobal.Float64()
	if relatorio.PontosPorCartao != nil {
		d.PontosPorCartao = relatorio.PontosPorCartao
	}
	if relatorio.Historico != nil {
		d.Historico = relatorio.Historico
	}

	d.MonthlyPoints = monthlySeries(relatorio.EvolucaoMensal)
	d.HistorySeries = historySeries(relatorio.Historico)

	d.MonthlyChart = geometry(values(d.MonthlyPoints), chart.MiniWidth, chart.MiniHeight)
	d.HistoryChart = geometry(pointValues(d.HistorySeries), chart.MiniWidth, chart.MiniHeight)

	return d
}

// monthlySeries filters out entries missing year or month, sorts ascending by
// (year, month) and keeps the most recent monthlyWindow months in
// chronological order.
func monthlySeries(evolucao []domain.EvolucaoMensal) []domain.MonthlyPoint {
	valid := make([]domain.EvolucaoMensal, 0, len(evolucao))
	for _, e := range evolucao {
		if e.Ano == 0 || e.Mes < 1 || e.Mes > 12 {
			continue
		}
		valid = append(valid, e)
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Ano != valid[j].Ano {
			return valid[i].Ano < valid[j].Ano
		}
		return valid[i].Mes < valid[j].Mes
	})

	if len(valid) > monthlyWindow {
		valid = valid[len(valid)-monthlyWindow:]
	}

	points := make([]domain.MonthlyPoint, 0, len(valid))
	for _, e := range valid {
		points = append(points, domain.MonthlyPoint{
			Label: monthShort[e.Mes-1],
			Value: e.Total.Float64(),
			Date:  time.Date(e.Ano, time.Month(e.Mes), 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return points
}

// historySeries drops entries whose date fails to parse, sorts the remainder
// ascending by date and keeps the most recent historyWindow entries.
func historySeries(historico []domain.HistoricoItem) []domain.SeriesPoint {
	type dated struct {
		item domain.HistoricoItem
		at   time.Time
	}

	valid := make([]dated, 0, len(historico))
	for _, h := range historico {
		at, ok := parseDate(h.Data)
		if !ok {
			continue
		}
		valid = append(valid, dated{item: h, at: at})
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].at.Before(valid[j].at)
	})

	if len(valid) > historyWindow {
		valid = valid[len(valid)-historyWindow:]
	}

	points := make([]domain.SeriesPoint, 0, len(valid))
	for _, v := range valid {
		points = append(points, domain.SeriesPoint{
			Label: fmt.Sprintf("%02d %s", v.at.Day(), monthShort[v.at.Month()-1]),
			Value: v.item.Pontos.Float64(),
		})
	}
	return points
}

// parseDate accepts the two date shapes the backend is known to emit.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ReportCharts derives the small report-canvas geometry for the monthly and
// history series of a report snapshot. Same series windows as the dashboard,
// different canvas.
func ReportCharts(relatorio *domain.Relatorio) (monthly, history domain.ChartGeometry) {
	if relatorio == nil {
		return domain.ChartGeometry{}, domain.ChartGeometry{}
	}
	monthlyVals := values(monthlySeries(relatorio.EvolucaoMensal))
	historyVals := pointValues(historySeries(relatorio.Historico))
	return geometry(monthlyVals, chart.ReportWidth, chart.ReportHeight),
		geometry(historyVals, chart.ReportWidth, chart.ReportHeight)
}

func geometry(vals []float64, width, height int) domain.ChartGeometry {
	return domain.ChartGeometry{
		Line: chart.LinePoints(vals, width, height),
		Area: chart.AreaPolygon(vals, width, height),
	}
}

func values(points []domain.MonthlyPoint) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	return vals
}

func pointValues(points []domain.SeriesPoint) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	return vals
}

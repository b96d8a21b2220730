package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// Dashboard shows the KPI cards and the report list.
func (a *App) Dashboard(ctx context.Context) error {
	a.println(a.styles.Muted.Render("Loading dashboard..."))
	stats, source, err := a.dashboard.Stats(ctx)
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		a.log.Warn(ctx, "dashboard stats unavailable", "error", err)
	}
	if source == services.StatsFromReports {
		a.println(a.styles.Muted.Render("Detailed statistics are unavailable; showing report count only."))
	}

	a.println(ui.Cards(a.styles, 5,
		ui.Card{Label: "Total reports", Value: fmt.Sprint(stats.TotalReports)},
		ui.Card{Label: "Migrated", Value: fmt.Sprint(stats.ReportsMigrated)},
		ui.Card{Label: "Progress", Value: ui.Number(stats.MigrationProgressPercent) + "%"},
		ui.Card{Label: "Est. hours", Value: ui.Number(stats.EstimatedTotalHours)},
		ui.Card{Label: "COE analyses", Value: fmt.Sprint(stats.COEAnalysesCount)},
	))
	a.println(ui.Bar(stats.MigrationProgressPercent, 30))

	if b := stats.ComplexityBreakdown; b != (models.ComplexityBreakdown{}) {
		a.println(a.styles.Bold.Render("Complexity"))
		a.print(ui.KeyValues(a.styles,
			[2]string{models.CategoryLabel(models.ComplexitySimple), fmt.Sprint(b.Simple)},
			[2]string{models.CategoryLabel(models.ComplexityMedium), fmt.Sprint(b.Medium)},
			[2]string{models.CategoryLabel(models.ComplexityComplex), fmt.Sprint(b.Complex)},
			[2]string{models.CategoryLabel(models.ComplexityVeryComplex), fmt.Sprint(b.VeryComplex)},
		))
	}

	return a.ReportList(ctx)
}

// ReportList prints every report the user owns.
func (a *App) ReportList(ctx context.Context) error {
	reports, err := a.reports.List(ctx, 0, 0)
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		a.println(a.styles.Error.Render("Error: " + client.Describe(err, err.Error())))
		return nil
	}

	a.println(a.styles.Bold.Render("Reports"))
	if len(reports) == 0 {
		a.println(a.styles.Muted.Render("No reports yet."))
		return nil
	}

	t := ui.NewTable("", "ID", "Name", "Description", "Complexity", "Source", "Migrated")
	for _, r := range reports {
		t.AddRow(fmt.Sprint(r.ID), r.Name, orDash(r.Description), complexityText(r), sourceText(r), yesNo(r.Migrated))
	}
	a.print(t.View(a.styles))
	return nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

func complexityText(r models.Report) string {
	if r.ComplexityScore == nil {
		return ""
	}
	return "Complexity: " + ui.Number(*r.ComplexityScore)
}

func sourceText(r models.Report) string {
	if r.SourceSystem == nil || *r.SourceSystem == "" {
		return ""
	}
	return "Source: " + *r.SourceSystem
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// ConsolidationPage explains the duplicate finder.
func (a *App) ConsolidationPage(ctx context.Context) {
	a.println(a.styles.Muted.Render("Find duplicate and near-duplicate reports to reduce migration scope."))
	a.println("Type 'run' to group reports with identical or very similar SQL.")
}

// Consolidate runs duplicate detection over all reports.
func (a *App) Consolidate(ctx context.Context) error {
	a.println(a.styles.Muted.Render("Analyzing..."))
	res, err := a.reports.Consolidate(ctx)
	if err != nil {
		return a.fail(ctx, err, "Failed")
	}
	a.printConsolidation(res)
	return nil
}

func (a *App) printConsolidation(r *models.ConsolidationResult) {
	a.println(ui.Title(a.styles, "Results"))
	a.println(ui.Cards(a.styles, 4,
		ui.Card{Label: "Total reports", Value: fmt.Sprint(r.TotalReports)},
		ui.Card{Label: "Unique", Value: fmt.Sprint(r.UniqueReports)},
		ui.Card{Label: "Reports to skip", Value: fmt.Sprint(r.PotentialSavings.ReportsToSkip)},
		ui.Card{Label: "Hours saved", Value: ui.Number(r.PotentialSavings.HoursSaved)},
	))
	if len(r.DuplicateGroups) == 0 {
		a.println(a.styles.Muted.Render("No duplicate groups found."))
		return
	}
	a.println(a.styles.Bold.Render("Duplicate groups"))
	for _, g := range r.DuplicateGroups {
		a.printf("Group %d — %s%%\n", g.GroupID, ui.Number(g.Similarity))
		for _, rep := range g.Reports {
			a.println("  - " + rep.Name)
		}
		a.println("  " + a.styles.Muted.Render(g.Recommendation))
	}
}

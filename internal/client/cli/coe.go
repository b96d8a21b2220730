package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// topListLimit caps the complex-report and duplicate-group lists.
const topListLimit = 10

// COEPage loads the analysis history and shows the selected result.
func (a *App) COEPage(ctx context.Context) error {
	a.println(a.styles.Muted.Render("Upload a Center of Excellence export CSV to analyze report complexity and find duplicates."))
	if err := a.loadCOEHistory(ctx); err != nil {
		return err
	}
	if a.coePage.result != nil {
		a.printCOEResult(a.coePage.result)
	}
	a.printCOEHistory()
	return nil
}

// loadCOEHistory refreshes the history list. Failures other than an
// expired session leave the list empty.
func (a *App) loadCOEHistory(ctx context.Context) error {
	list, err := a.coe.History(ctx, services.DefaultHistorySkip, services.DefaultHistoryLimit)
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		a.log.Debug(ctx, "coe history unavailable", "error", err)
		list = nil
	}
	a.coePage.history = list
	return nil
}

// COEUpload sends a CSV file for analysis and selects the new result.
func (a *App) COEUpload(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		var err error
		path, err = getSimpleText(a.reader, "CSV file", a.out)
		if err != nil {
			return err
		}
	}
	if path == "" {
		a.println(ui.Error(a.styles, "Select a CSV file"))
		return nil
	}

	a.println(a.styles.Muted.Render("Analyzing..."))
	res, err := a.coe.UploadFile(ctx, path)
	if err != nil {
		return a.fail(ctx, err, "Upload failed")
	}

	a.coePage.result = res
	a.coePage.selectedID = res.AnalysisID
	a.printCOEResult(res)
	if err := a.loadCOEHistory(ctx); err != nil {
		return err
	}
	a.printCOEHistory()
	return nil
}

// COEHistory prints the past analyses.
func (a *App) COEHistory(ctx context.Context) error {
	if err := a.loadCOEHistory(ctx); err != nil {
		return err
	}
	a.printCOEHistory()
	return nil
}

// COEShow selects a past analysis and prints it. A failed fetch clears
// the result without an error message.
func (a *App) COEShow(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}
	a.coePage.selectedID = &id
	res, err := a.coe.Results(ctx, id)
	if err != nil {
		if a.expired(ctx, err) {
			return err
		}
		a.log.Debug(ctx, "coe results unavailable", "id", id, "error", err)
		a.coePage.result = nil
		a.println(a.styles.Muted.Render("No result to show."))
		return nil
	}
	a.coePage.result = res
	a.printCOEResult(res)
	return nil
}

// COEDelete removes an analysis. The selection is always cleared; the
// shown result only when it was the deleted one.
func (a *App) COEDelete(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}
	if err := a.coe.Delete(ctx, id); err != nil {
		return a.fail(ctx, err, "Delete failed")
	}
	if sel := a.coePage.selectedID; sel != nil && *sel == id {
		a.coePage.result = nil
	}
	a.coePage.selectedID = nil
	a.println(ui.Notice(a.styles, fmt.Sprintf("Analysis %d deleted.", id)))
	return a.COEHistory(ctx)
}

func (a *App) parseID(arg string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		a.println(ui.Error(a.styles, "expected a numeric id"))
		return 0, false
	}
	return id, true
}

func (a *App) printCOEResult(r *models.COEAnalysisResult) {
	title := "Results"
	if r.Filename != "" {
		title += " — " + r.Filename
	}
	a.println(ui.Title(a.styles, title))
	if r.Error != "" {
		a.println(ui.Error(a.styles, r.Error))
	}

	a.println(ui.Cards(a.styles, 4,
		ui.Card{Label: "Reports", Value: fmt.Sprint(r.ReportCount)},
		ui.Card{Label: "Unique", Value: fmt.Sprint(r.UniqueCount)},
		ui.Card{Label: "Duplicates", Value: fmt.Sprint(r.DuplicateCount)},
		ui.Card{Label: "Est. Hours", Value: ui.Number(r.TotalEstimatedHours)},
	))

	if keys := r.DistributionKeys(); len(keys) > 0 {
		a.println(a.styles.Bold.Render("Complexity distribution"))
		pairs := make([][2]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, [2]string{k, fmt.Sprint(r.ComplexityDistribution[k])})
		}
		a.print(ui.KeyValues(a.styles, pairs...))
	}

	if len(r.TopComplexReports) > 0 {
		a.println(a.styles.Bold.Render("Top complex reports"))
		for _, c := range r.TopComplexReports[:min(topListLimit, len(r.TopComplexReports))] {
			a.printf("  %s — Score: %s, Hours: %s\n", c.ReportName, ui.Number(c.ComplexityScore), ui.Number(c.EstimatedHours))
		}
	}

	if len(r.DuplicateGroups) > 0 {
		a.println(a.styles.Bold.Render("Duplicate groups"))
		for _, g := range r.DuplicateGroups[:min(topListLimit, len(r.DuplicateGroups))] {
			a.printf("  %s%% %s — %s\n", ui.Number(g.Similarity), strings.Join(g.ReportNames, ", "), g.Recommendation)
		}
	}

	if owners := r.OwnersByCount(); len(owners) > 0 {
		t := ui.NewTable("Reports by owner", "Owner", "Reports")
		for _, o := range owners {
			t.AddRow(o, fmt.Sprint(r.ReportsByOwner[o]))
		}
		a.print(t.View(a.styles))
	}
}

func (a *App) printCOEHistory() {
	a.println(a.styles.Bold.Render("Past analyses"))
	if len(a.coePage.history) == 0 {
		a.println(a.styles.Muted.Render("No past analyses."))
		return
	}
	for _, h := range a.coePage.history {
		marker := " "
		if sel := a.coePage.selectedID; sel != nil && *sel == h.ID {
			marker = ">"
		}
		a.printf("%s %d. %s — %s reports, %s hrs\n", marker, h.ID, h.Filename, intOrDash(h.ReportCount), floatOrDash(h.TotalEstimatedHours))
	}
}

func intOrDash(v *int) string {
	if v == nil {
		return "—"
	}
	return strconv.Itoa(*v)
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "—"
	}
	return ui.Number(*v)
}

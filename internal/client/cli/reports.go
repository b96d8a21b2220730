package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// ReportAdd prompts for a report definition and stores it.
func (a *App) ReportAdd(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		a.println(ui.Error(a.styles, "Name is required"))
		return nil
	}
	desc, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	source, err := getSimpleText(a.reader, "Source system", a.out)
	if err != nil {
		return err
	}
	query, err := getMultiline(a.reader, "SQL", a.out)
	if err != nil {
		return err
	}

	in := models.ReportInput{Name: &name}
	if desc != "" {
		in.Description = &desc
	}
	if source != "" {
		in.SourceSystem = &source
	}
	if query != "" {
		in.SQLQuery = &query
	}

	r, err := a.reports.Create(ctx, in)
	if err != nil {
		return a.fail(ctx, err, "Create failed")
	}
	a.println(ui.Notice(a.styles, fmt.Sprintf("Report %d created.", r.ID)))
	return nil
}

// ReportShow prints one report in full.
func (a *App) ReportShow(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}
	r, err := a.reports.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err, "Report not found")
	}

	pairs := [][2]string{
		{"ID", strconv.Itoa(r.ID)},
		{"Name", r.Name},
		{"Description", orDash(r.Description)},
		{"Source", orDash(r.SourceSystem)},
		{"Migrated", yesNo(r.Migrated)},
	}
	if r.ComplexityScore != nil {
		pairs = append(pairs, [2]string{"Complexity", ui.Number(*r.ComplexityScore)})
	}
	if r.ComplexityCategory != nil {
		pairs = append(pairs, [2]string{"Category", models.CategoryLabel(*r.ComplexityCategory)})
	}
	if r.EstimatedHours != nil {
		pairs = append(pairs, [2]string{"Est. hours", ui.Number(*r.EstimatedHours)})
	}
	a.print(ui.KeyValues(a.styles, pairs...))
	if r.SQLQuery != nil && *r.SQLQuery != "" {
		a.println(a.styles.Bold.Render("SQL"))
		a.println(*r.SQLQuery)
	}
	return nil
}

// ReportMigrated flags a report as migrated.
func (a *App) ReportMigrated(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}
	migrated := true
	if _, err := a.reports.Update(ctx, id, models.ReportInput{Migrated: &migrated}); err != nil {
		return a.fail(ctx, err, "Update failed")
	}
	a.println(ui.Notice(a.styles, fmt.Sprintf("Report %d marked as migrated.", id)))
	return nil
}

// ReportDelete removes a report.
func (a *App) ReportDelete(ctx context.Context, arg string) error {
	id, ok := a.parseID(arg)
	if !ok {
		return nil
	}
	if err := a.reports.Delete(ctx, id); err != nil {
		return a.fail(ctx, err, "Delete failed")
	}
	a.println(ui.Notice(a.styles, fmt.Sprintf("Report %d deleted.", id)))
	return nil
}

package cli

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// SQLPage prints the usage of the analyzer and the last result, if any.
func (a *App) SQLPage(ctx context.Context) {
	a.println(a.styles.Muted.Render("Analyze SQL complexity, lineage and migration recommendations, or compare two queries."))
	a.println("Commands: analyze, compare")
	switch {
	case a.sqlPage.analysis != nil:
		a.printAnalysis(a.sqlPage.analysis)
	case a.sqlPage.comparison != nil:
		a.printComparison(a.sqlPage.comparison)
	}
}

// SQLAnalyze reads a query and prints its analysis.
func (a *App) SQLAnalyze(ctx context.Context) error {
	a.sqlPage = sqlState{}
	query, err := getMultiline(a.reader, "SQL Query", a.out)
	if err != nil {
		return err
	}

	a.println(a.styles.Muted.Render("Analyzing..."))
	res, err := a.sql.Analyze(ctx, query)
	if err != nil {
		return a.fail(ctx, err, "Analysis failed")
	}
	a.sqlPage.analysis = res
	a.printAnalysis(res)
	return nil
}

// SQLCompare reads an original and a migrated query and compares them.
func (a *App) SQLCompare(ctx context.Context) error {
	a.sqlPage = sqlState{}
	original, err := getMultiline(a.reader, "Original SQL", a.out)
	if err != nil {
		return err
	}
	migrated, err := getMultiline(a.reader, "Migrated SQL", a.out)
	if err != nil {
		return err
	}

	a.println(a.styles.Muted.Render("Comparing..."))
	res, err := a.sql.Compare(ctx, original, migrated)
	if err != nil {
		return a.fail(ctx, err, "Compare failed")
	}
	a.sqlPage.comparison = res
	a.printComparison(res)
	return nil
}

func (a *App) printAnalysis(r *models.SQLAnalysis) {
	a.println(ui.Title(a.styles, "Analysis result"))
	a.println(ui.Cards(a.styles, 4,
		ui.Card{Label: "Complexity score", Value: ui.Number(r.ComplexityScore)},
		ui.Card{Label: "Category", Value: r.ComplexityCategory},
		ui.Card{Label: "Est. hours", Value: ui.Number(r.EstimatedHours)},
		ui.Card{Label: "Risk", Value: r.RiskLevel},
	))
	if len(r.Lineage.Tables) > 0 {
		a.println(a.styles.Bold.Render("Tables:") + " " + strings.Join(r.Lineage.Tables, ", "))
	}
	if len(r.Metrics) > 0 {
		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := ui.NewTable("Metrics", "Metric", "Value")
		for _, k := range keys {
			t.AddRow(k, strconv.Itoa(r.Metrics[k]))
		}
		a.print(t.View(a.styles))
	}
	if len(r.Recommendations) > 0 {
		a.println(a.styles.Bold.Render("Recommendations"))
		for _, rec := range r.Recommendations {
			a.println("  - " + rec)
		}
	}
}

func (a *App) printComparison(r *models.SQLComparison) {
	a.println(ui.Title(a.styles, "Comparison result"))
	a.println(ui.Cards(a.styles, 4,
		ui.Card{Label: "Similarity", Value: ui.Number(r.SimilarityPercent) + "%"},
		ui.Card{Label: "Identical", Value: yesNo(r.AreIdentical)},
		ui.Card{Label: "Semantically equivalent", Value: yesNo(r.AreSemanticallyEquivalent)},
		ui.Card{Label: "Migration quality", Value: r.MigrationQuality},
	))
	if len(r.Differences) == 0 {
		return
	}
	clauses := make([]string, 0, len(r.Differences))
	for c := range r.Differences {
		clauses = append(clauses, c)
	}
	sort.Strings(clauses)
	t := ui.NewTable("Differences", "Clause", "Added", "Removed", "Note")
	for _, c := range clauses {
		d := r.Differences[c]
		t.AddRow(c, strings.Join(d.Added, ", "), strings.Join(d.Removed, ", "), d.Note)
	}
	a.print(t.View(a.styles))
}

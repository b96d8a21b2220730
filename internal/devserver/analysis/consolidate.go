package analysis

import (
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

type consolidationItem struct {
	ref         models.ReportRef
	sql         string
	fingerprint string
	hours       float64
}

// Consolidate groups stored reports whose queries are identical or
// nearly so, and estimates the effort saved by migrating one per group.
func Consolidate(reports []models.Report) models.ConsolidationResult {
	res := models.ConsolidationResult{
		TotalReports:    len(reports),
		DuplicateGroups: []models.ConsolidationGroup{},
	}
	if len(reports) == 0 {
		return res
	}

	items := make([]consolidationItem, 0, len(reports))
	for _, r := range reports {
		it := consolidationItem{
			ref:   models.ReportRef{ID: r.ID, Name: r.Name},
			hours: ReportHours(r),
		}
		if r.SQLQuery != nil {
			it.sql = strings.TrimSpace(*r.SQLQuery)
		}
		if it.sql != "" {
			it.fingerprint = Fingerprint(it.sql)
		}
		items = append(items, it)
	}

	groups, unique := groupByFingerprint(items, func(it consolidationItem) string { return it.fingerprint })
	res.UniqueReports = len(unique)

	var saved float64
	for _, g := range groups {
		refs := make([]models.ReportRef, len(g))
		for i, it := range g {
			refs[i] = it.ref
			if i > 0 {
				saved += it.hours
			}
		}
		res.DuplicateGroups = append(res.DuplicateGroups, models.ConsolidationGroup{
			GroupID:        len(res.DuplicateGroups) + 1,
			Similarity:     100,
			Type:           models.DuplicateExact,
			Reports:        refs,
			Recommendation: "Migrate only one; create aliases for others",
		})
		res.PotentialSavings.ReportsToSkip += len(g) - 1
	}

	for _, p := range nearPairs(unique, func(it consolidationItem) string { return it.sql }) {
		a, b := unique[p.i], unique[p.j]
		res.DuplicateGroups = append(res.DuplicateGroups, models.ConsolidationGroup{
			GroupID:        len(res.DuplicateGroups) + 1,
			Similarity:     round(p.similarity, 1),
			Type:           models.DuplicateNear,
			Reports:        []models.ReportRef{a.ref, b.ref},
			Recommendation: "Consolidate into single parameterized report with filters",
		})
		res.PotentialSavings.ReportsToSkip++
		saved += b.hours
	}
	res.PotentialSavings.HoursSaved = round(saved, 1)

	return res
}

// ReportHours is the stored estimate, or one derived from the score
// (a missing score counts as 1).
func ReportHours(r models.Report) float64 {
	if r.EstimatedHours != nil && *r.EstimatedHours != 0 {
		return *r.EstimatedHours
	}
	score := 1.0
	if r.ComplexityScore != nil && *r.ComplexityScore != 0 {
		score = *r.ComplexityScore
	}
	return score * hoursPerPoint
}

package analysis

import (
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// Stats aggregates the dashboard KPIs over one user's reports.
func Stats(reports []models.Report, analyses int) models.DashboardStats {
	st := models.DashboardStats{
		TotalReports:     len(reports),
		COEAnalysesCount: analyses,
	}

	var hours float64
	for _, r := range reports {
		if r.Migrated {
			st.ReportsMigrated++
		}

		score := 0.0
		if r.ComplexityScore != nil {
			score = *r.ComplexityScore
		}
		cat := ""
		if r.ComplexityCategory != nil {
			cat = models.NormalizeCategory(*r.ComplexityCategory)
		}
		if !countCategory(&st.ComplexityBreakdown, cat) {
			countCategory(&st.ComplexityBreakdown, models.NormalizeCategory(Category(score)))
		}

		if r.EstimatedHours != nil && *r.EstimatedHours != 0 {
			hours += *r.EstimatedHours
		} else {
			hours += score * hoursPerPoint
		}
	}

	st.EstimatedTotalHours = round(hours, 1)
	if st.TotalReports > 0 {
		st.MigrationProgressPercent = round(100*float64(st.ReportsMigrated)/float64(st.TotalReports), 1)
	}
	return st
}

func countCategory(b *models.ComplexityBreakdown, key string) bool {
	switch strings.TrimSpace(key) {
	case models.ComplexitySimple:
		b.Simple++
	case models.ComplexityMedium:
		b.Medium++
	case models.ComplexityComplex:
		b.Complex++
	case models.ComplexityVeryComplex:
		b.VeryComplex++
	default:
		return false
	}
	return true
}

// Enrich fills in score, category and hours for a report that carries a
// query but no score of its own.
func Enrich(r *models.Report) {
	if r.SQLQuery == nil || strings.TrimSpace(*r.SQLQuery) == "" || r.ComplexityScore != nil {
		return
	}
	score := Score(*r.SQLQuery)
	cat := Category(score)
	hours := Hours(score)
	r.ComplexityScore = &score
	if r.ComplexityCategory == nil {
		r.ComplexityCategory = &cat
	}
	if r.EstimatedHours == nil {
		r.EstimatedHours = &hours
	}
}

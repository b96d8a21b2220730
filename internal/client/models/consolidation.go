package models

// Duplicate group kinds.
const (
	DuplicateExact = "EXACT"
	DuplicateNear  = "NEAR_DUPLICATE"
)

type ReportRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ConsolidationGroup struct {
	GroupID        int         `json:"group_id"`
	Similarity     float64     `json:"similarity"`
	Type           string      `json:"type"`
	Reports        []ReportRef `json:"reports"`
	Recommendation string      `json:"recommendation"`
}

type PotentialSavings struct {
	ReportsToSkip int     `json:"reports_to_skip"`
	HoursSaved    float64 `json:"hours_saved"`
}

// ConsolidationResult is returned by POST /api/reports/consolidate.
type ConsolidationResult struct {
	TotalReports     int                  `json:"total_reports"`
	UniqueReports    int                  `json:"unique_reports"`
	DuplicateGroups  []ConsolidationGroup `json:"duplicate_groups"`
	PotentialSavings PotentialSavings     `json:"potential_savings"`
}

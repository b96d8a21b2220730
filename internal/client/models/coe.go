package models

import "sort"

type COEDuplicateGroup struct {
	Similarity     float64  `json:"similarity"`
	Type           string   `json:"type"`
	ReportNames    []string `json:"report_names"`
	Recommendation string   `json:"recommendation"`
}

type COEComplexReport struct {
	ReportName         string  `json:"report_name"`
	ComplexityScore    float64 `json:"complexity_score"`
	ComplexityCategory string  `json:"complexity_category"`
	EstimatedHours     float64 `json:"estimated_hours"`
}

// COEReport is a single parsed row of an uploaded COE export.
type COEReport struct {
	ReportName         string  `json:"report_name"`
	ReportID           string  `json:"report_id,omitempty"`
	SQL                string  `json:"sql,omitempty"`
	Owner              string  `json:"owner,omitempty"`
	ComplexityScore    float64 `json:"complexity_score"`
	ComplexityCategory string  `json:"complexity_category"`
	EstimatedHours     float64 `json:"estimated_hours"`
}

// COEAnalysisResult is the outcome of an upload, or of reading back a
// stored analysis. Error is set by the server when the CSV had no SQL column.
type COEAnalysisResult struct {
	AnalysisID             *int                `json:"analysis_id,omitempty"`
	Filename               string              `json:"filename,omitempty"`
	CreatedAt              *string             `json:"created_at,omitempty"`
	Error                  string              `json:"error,omitempty"`
	ReportCount            int                 `json:"report_count"`
	UniqueCount            int                 `json:"unique_count"`
	DuplicateCount         int                 `json:"duplicate_count"`
	ComplexityDistribution map[string]int      `json:"complexity_distribution"`
	TotalEstimatedHours    float64             `json:"total_estimated_hours"`
	AvgComplexity          float64             `json:"avg_complexity"`
	DuplicateGroups        []COEDuplicateGroup `json:"duplicate_groups"`
	TopComplexReports      []COEComplexReport  `json:"top_complex_reports"`
	ReportsByOwner         map[string]int      `json:"reports_by_owner"`
	Reports                []COEReport         `json:"reports,omitempty"`
}

// DistributionKeys returns the complexity buckets present in the result,
// simplest first.
func (r COEAnalysisResult) DistributionKeys() []string {
	keys := make([]string, 0, len(r.ComplexityDistribution))
	for k := range r.ComplexityDistribution {
		keys = append(keys, k)
	}
	SortCategories(keys)
	return keys
}

// OwnersByCount lists owners with the most reports first.
func (r COEAnalysisResult) OwnersByCount() []string {
	owners := make([]string, 0, len(r.ReportsByOwner))
	for o := range r.ReportsByOwner {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool {
		ci, cj := r.ReportsByOwner[owners[i]], r.ReportsByOwner[owners[j]]
		if ci != cj {
			return ci > cj
		}
		return owners[i] < owners[j]
	})
	return owners
}

// COEAnalysisRecord is one row of the analysis history.
type COEAnalysisRecord struct {
	ID                  int      `json:"id"`
	Filename            string   `json:"filename"`
	ReportCount         *int     `json:"report_count,omitempty"`
	DuplicateCount      *int     `json:"duplicate_count,omitempty"`
	UniqueCount         *int     `json:"unique_count,omitempty"`
	AvgComplexity       *float64 `json:"avg_complexity,omitempty"`
	TotalEstimatedHours *float64 `json:"total_estimated_hours,omitempty"`
	CreatedAt           *string  `json:"created_at,omitempty"`
}

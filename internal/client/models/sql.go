package models

type SQLAnalyzeRequest struct {
	SQLQuery string `json:"sql_query"`
}

type SQLCompareRequest struct {
	SQL1 string `json:"sql1"`
	SQL2 string `json:"sql2"`
}

type Lineage struct {
	Tables  []string `json:"tables"`
	Columns []string `json:"columns"`
}

// SQLAnalysis is the result of POST /api/sql/analyze.
type SQLAnalysis struct {
	ComplexityScore    float64        `json:"complexity_score"`
	ComplexityCategory string         `json:"complexity_category"`
	EstimatedHours     float64        `json:"estimated_hours"`
	RiskLevel          string         `json:"risk_level,omitempty"`
	Metrics            map[string]int `json:"metrics"`
	Lineage            Lineage        `json:"lineage"`
	Recommendations    []string       `json:"recommendations"`
}

// ClauseDiff describes how one clause changed between two queries.
type ClauseDiff struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Note    string   `json:"note"`
}

// SQLComparison is the result of POST /api/sql/compare.
type SQLComparison struct {
	AreIdentical              bool                  `json:"are_identical"`
	AreSemanticallyEquivalent bool                  `json:"are_semantically_equivalent"`
	SimilarityPercent         float64               `json:"similarity_percent"`
	Differences               map[string]ClauseDiff `json:"differences"`
	CompatibilityScore        int                   `json:"compatibility_score"`
	MigrationQuality          string                `json:"migration_quality"`
}

package models

// ComplexityBreakdown counts reports per complexity bucket.
type ComplexityBreakdown struct {
	Simple      int `json:"simple"`
	Medium      int `json:"medium"`
	Complex     int `json:"complex"`
	VeryComplex int `json:"very_complex"`
}

// DashboardStats is the KPI block of GET /api/dashboard/stats.
type DashboardStats struct {
	TotalReports             int                 `json:"total_reports"`
	ReportsMigrated          int                 `json:"reports_migrated"`
	MigrationProgressPercent float64             `json:"migration_progress_percent"`
	ComplexityBreakdown      ComplexityBreakdown `json:"complexity_breakdown"`
	EstimatedTotalHours      float64             `json:"estimated_total_hours"`
	COEAnalysesCount         int                 `json:"coe_analyses_count"`
}

// Report is one stored report definition.
type Report struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Description        *string  `json:"description,omitempty"`
	ReportType         *string  `json:"report_type,omitempty"`
	SQLQuery           *string  `json:"sql_query,omitempty"`
	ComplexityScore    *float64 `json:"complexity_score,omitempty"`
	ComplexityCategory *string  `json:"complexity_category,omitempty"`
	EstimatedHours     *float64 `json:"estimated_hours,omitempty"`
	SourceSystem       *string  `json:"source_system,omitempty"`
	CreatedBy          int      `json:"created_by"`
	Migrated           bool     `json:"migrated"`
}

// ReportInput is the create/update body for /api/reports/. Nil fields are
// left untouched on update.
type ReportInput struct {
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	ReportType         *string  `json:"report_type,omitempty"`
	SQLQuery           *string  `json:"sql_query,omitempty"`
	ComplexityScore    *float64 `json:"complexity_score,omitempty"`
	ComplexityCategory *string  `json:"complexity_category,omitempty"`
	EstimatedHours     *float64 `json:"estimated_hours,omitempty"`
	SourceSystem       *string  `json:"source_system,omitempty"`
	Migrated           *bool    `json:"migrated,omitempty"`
}

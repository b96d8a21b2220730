package analysis

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

const maxLineageColumns = 50

// Comparison quality bands.
const (
	QualityExcellent = "EXCELLENT"
	QualityGood      = "GOOD"
	QualityFair      = "FAIR"
	QualityReview    = "REVIEW"
)

var reColumnWord = regexp.MustCompile(`[\w.]+`)

type hint struct {
	match func(upper string) bool
	text  string
}

var dialectHints = []hint{
	{contains("DECODE"), "Replace DECODE with CASE WHEN"},
	{contains("NVL"), "Replace NVL with COALESCE or ISNULL"},
	{contains("ROWNUM"), "Convert ROWNUM to ROW_NUMBER() OVER (ORDER BY ...)"},
	{contains("SYSDATE"), "Replace SYSDATE with target DB current date function"},
	{func(u string) bool { return strings.Contains(u, "TOP ") && !strings.Contains(u, "LIMIT") },
		"Consider TOP vs LIMIT for target platform"},
}

func contains(word string) func(string) bool {
	return func(u string) bool { return strings.Contains(u, word) }
}

// Analyze scores a single query and lists dialect specific rewrites.
func Analyze(sql string) models.SQLAnalysis {
	if strings.TrimSpace(sql) == "" {
		return models.SQLAnalysis{
			ComplexityScore:    1,
			ComplexityCategory: CategorySimple,
			EstimatedHours:     hoursPerPoint,
			Metrics:            map[string]int{},
			Lineage:            models.Lineage{Tables: []string{}, Columns: []string{}},
			Recommendations:    []string{},
		}
	}

	score := Score(sql)
	tables := Tables(sql)
	upper := strings.ToUpper(sql)

	recs := []string{}
	for _, h := range dialectHints {
		if h.match(upper) {
			recs = append(recs, h.text)
		}
	}

	return models.SQLAnalysis{
		ComplexityScore:    score,
		ComplexityCategory: Category(score),
		EstimatedHours:     Hours(score),
		RiskLevel:          risk(score),
		Metrics: map[string]int{
			"tables_referenced": len(tables),
			"line_count":        LineCount(sql),
		},
		Lineage:         models.Lineage{Tables: tables, Columns: columns(sql)},
		Recommendations: recs,
	}
}

func risk(score float64) string {
	switch {
	case score > 25:
		return "HIGH"
	case score > 15:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// columns picks the words of the select list. It is a heuristic and
// makes no attempt to resolve expressions.
func columns(sql string) []string {
	out := []string{}
	idx := strings.Index(strings.ToUpper(sql), " FROM ")
	if idx <= 0 {
		return out
	}
	head := strings.TrimSpace(sql[:idx])
	if strings.HasPrefix(strings.ToUpper(head), "SELECT") {
		head = strings.TrimSpace(head[len("SELECT"):])
	}
	for _, w := range reColumnWord.FindAllString(head, -1) {
		switch strings.ToUpper(w) {
		case "SELECT", "DISTINCT", "AS", "FROM":
			continue
		}
		if isDigits(w) {
			continue
		}
		out = append(out, w)
		if len(out) == maxLineageColumns {
			break
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Compare rates how closely migrated matches original.
func Compare(original, migrated string) models.SQLComparison {
	identical := Normalize(original) == Normalize(migrated)

	var similarity float64
	switch {
	case original == "" && migrated == "":
		similarity = 100
	default:
		similarity = Similarity(original, migrated)
	}

	diffs := map[string]models.ClauseDiff{
		"select_clause": emptyDiff(),
		"from_clause":   emptyDiff(),
		"where_clause":  emptyDiff(),
	}
	if !identical {
		d := diffs["select_clause"]
		d.Note = "Compare SELECT lists manually"
		diffs["select_clause"] = d
	}

	compat := min(100, int(similarity))
	return models.SQLComparison{
		AreIdentical:              identical,
		AreSemanticallyEquivalent: similarity >= 95,
		SimilarityPercent:         round(similarity, 1),
		Differences:               diffs,
		CompatibilityScore:        compat,
		MigrationQuality:          quality(compat),
	}
}

func emptyDiff() models.ClauseDiff {
	return models.ClauseDiff{Added: []string{}, Removed: []string{}}
}

func quality(compat int) string {
	switch {
	case compat >= 95:
		return QualityExcellent
	case compat >= 80:
		return QualityGood
	case compat >= 60:
		return QualityFair
	default:
		return QualityReview
	}
}

package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

const (
	nearDuplicateThreshold = 85
	topComplexLimit        = 10
	unknownOwner           = "Unknown"
)

// ErrNoSQLColumn is reported in the result, not returned, when an export
// lacks a query column.
var ErrNoSQLColumn = errors.New("No SQL column found. Expected 'Query SQL' or similar.")

const (
	colName  = "name"
	colID    = "id"
	colSQL   = "sql"
	colOwner = "owner"
)

var columnAliases = map[string]string{
	"report name":  colName,
	"reportname":   colName,
	"name":         colName,
	"report id":    colID,
	"reportid":     colID,
	"query sql":    colSQL,
	"querysql":     colSQL,
	"sql":          colSQL,
	"report owner": colOwner,
	"owner":        colOwner,
}

type scored struct {
	models.COEReport
	fingerprint string
}

// ProcessCOE parses a COE export and summarises complexity, effort and
// duplication. Malformed CSV is an error; a CSV without a query column
// yields a result whose Error is set.
func ProcessCOE(r io.Reader) (*models.COEAnalysisResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &models.COEAnalysisResult{Error: ErrNoSQLColumn.Error()}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if c, ok := columnAliases[key]; ok {
			if _, dup := cols[c]; !dup {
				cols[c] = i
			}
		}
	}
	sqlIdx, ok := cols[colSQL]
	if !ok {
		return &models.COEAnalysisResult{Error: ErrNoSQLColumn.Error()}, nil
	}

	field := func(rec []string, col string) (string, bool) {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return "", ok
		}
		return strings.TrimSpace(rec[i]), true
	}

	var reports []scored
	for idx := 0; ; idx++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", idx+1, err)
		}

		sql := ""
		if sqlIdx < len(rec) {
			sql = strings.TrimSpace(rec[sqlIdx])
		}
		name, ok := field(rec, colName)
		if !ok {
			name = "Report"
		}
		id, ok := field(rec, colID)
		if !ok {
			id = strconv.Itoa(idx)
		}
		owner, _ := field(rec, colOwner)

		score := Score(sql)
		s := scored{COEReport: models.COEReport{
			ReportName:         name,
			ReportID:           id,
			SQL:                sql,
			Owner:              owner,
			ComplexityScore:    score,
			ComplexityCategory: Category(score),
			EstimatedHours:     Hours(score),
		}}
		if sql != "" {
			s.fingerprint = Fingerprint(sql)
		}
		reports = append(reports, s)
	}

	return summarise(reports), nil
}

func summarise(reports []scored) *models.COEAnalysisResult {
	res := &models.COEAnalysisResult{
		ReportCount:            len(reports),
		ComplexityDistribution: map[string]int{},
		ReportsByOwner:         map[string]int{},
		DuplicateGroups:        []models.COEDuplicateGroup{},
		TopComplexReports:      []models.COEComplexReport{},
		Reports:                make([]models.COEReport, 0, len(reports)),
	}

	var hours, total float64
	for _, r := range reports {
		res.ComplexityDistribution[r.ComplexityCategory]++
		owner := r.Owner
		if owner == "" {
			owner = unknownOwner
		}
		res.ReportsByOwner[owner]++
		hours += r.EstimatedHours
		total += r.ComplexityScore
		res.Reports = append(res.Reports, r.COEReport)
	}
	res.TotalEstimatedHours = round(hours, 1)
	if len(reports) > 0 {
		res.AvgComplexity = round(total/float64(len(reports)), 1)
	}

	groups, unique := groupByFingerprint(reports, func(r scored) string { return r.fingerprint })
	res.UniqueCount = len(unique)

	for _, g := range groups {
		names := make([]string, len(g))
		for i, r := range g {
			names[i] = r.ReportName
		}
		res.DuplicateGroups = append(res.DuplicateGroups, coeGroup(100, models.DuplicateExact, names))
		res.DuplicateCount += len(g) - 1
	}

	seen := map[[2]string]bool{}
	for _, p := range nearPairs(unique, func(r scored) string { return r.SQL }) {
		a, b := unique[p.i], unique[p.j]
		key := [2]string{a.ReportName, b.ReportName}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		res.DuplicateGroups = append(res.DuplicateGroups,
			coeGroup(round(p.similarity, 1), models.DuplicateNear, []string{a.ReportName, b.ReportName}))
		res.DuplicateCount++
	}

	top := make([]scored, len(reports))
	copy(top, reports)
	sort.SliceStable(top, func(i, j int) bool { return top[i].ComplexityScore > top[j].ComplexityScore })
	if len(top) > topComplexLimit {
		top = top[:topComplexLimit]
	}
	for _, r := range top {
		res.TopComplexReports = append(res.TopComplexReports, models.COEComplexReport{
			ReportName:         r.ReportName,
			ComplexityScore:    r.ComplexityScore,
			ComplexityCategory: r.ComplexityCategory,
			EstimatedHours:     r.EstimatedHours,
		})
	}

	return res
}

func coeGroup(similarity float64, kind string, names []string) models.COEDuplicateGroup {
	rec := "Review for consolidation"
	if similarity >= 95 {
		rec = "Consolidate into single parameterized report"
	}
	return models.COEDuplicateGroup{
		Similarity:     similarity,
		Type:           kind,
		ReportNames:    names,
		Recommendation: rec,
	}
}

// groupByFingerprint returns the groups sharing a non-empty fingerprint
// (two or more members, first-seen order) and one representative per
// fingerprint.
func groupByFingerprint[T any](items []T, fp func(T) string) (groups [][]T, unique []T) {
	index := map[string]int{}
	var all [][]T
	for _, it := range items {
		f := fp(it)
		if f == "" {
			continue
		}
		i, ok := index[f]
		if !ok {
			i = len(all)
			index[f] = i
			all = append(all, nil)
		}
		all[i] = append(all[i], it)
	}
	for _, g := range all {
		unique = append(unique, g[0])
		if len(g) > 1 {
			groups = append(groups, g)
		}
	}
	return groups, unique
}

type pair struct {
	i, j       int
	similarity float64
}

// nearPairs finds pairs of distinct queries that are similar but not equal.
func nearPairs[T any](items []T, sql func(T) string) []pair {
	var out []pair
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			a, b := sql(items[i]), sql(items[j])
			if a == "" || b == "" {
				continue
			}
			sim := Similarity(a, b)
			if sim >= nearDuplicateThreshold && sim < 100 {
				out = append(out, pair{i: i, j: j, similarity: sim})
			}
		}
	}
	return out
}

package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Category names as produced by Category.
const (
	CategorySimple      = "Simple"
	CategoryMedium      = "Medium"
	CategoryComplex     = "Complex"
	CategoryVeryComplex = "Very Complex"
)

const hoursPerPoint = 0.5

var (
	reSelect    = regexp.MustCompile(`(?i)\bSELECT\b`)
	reJoin      = regexp.MustCompile(`(?i)\bJOIN\b`)
	reSubquery  = regexp.MustCompile(`(?i)\(\s*SELECT\b`)
	reSetOp     = regexp.MustCompile(`(?i)\b(UNION|INTERSECT|EXCEPT)\b`)
	reCase      = regexp.MustCompile(`(?i)\bCASE\b`)
	reAggregate = regexp.MustCompile(`(?i)\b(COUNT|SUM|AVG|MIN|MAX)\s*\(`)
	reWindow    = regexp.MustCompile(`(?i)\bOVER\s*\(`)
	reRecursive = regexp.MustCompile(`(?i)\bWITH\s+RECURSIVE\b`)
	reWith      = regexp.MustCompile(`(?i)\bWITH\b`)

	reLineComment  = regexp.MustCompile(`--[^\n]*`)
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reQuoted       = regexp.MustCompile(`'(?:[^']|'')*'`)
	reNumber       = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	reSpace        = regexp.MustCompile(`\s+`)
	reTable        = regexp.MustCompile(`(?i)(?:FROM|JOIN)\s+(\w+)`)
	reToken        = regexp.MustCompile(`\w+|[^\w\s]`)
)

// Score rates query complexity. An empty query scores 1.
func Score(sql string) float64 {
	s := stripComments(sql)
	score := 1.0

	if n := len(reSelect.FindAllString(s, -1)); n > 1 {
		score += float64(n - 1)
	}
	score += 2 * float64(len(reJoin.FindAllString(s, -1)))
	score += 3 * float64(len(reSubquery.FindAllString(s, -1)))
	score += 2 * float64(len(reSetOp.FindAllString(s, -1)))
	score += float64(len(reCase.FindAllString(s, -1)))
	score += float64(len(reAggregate.FindAllString(s, -1)))
	score += 3 * float64(len(reWindow.FindAllString(s, -1)))

	if reRecursive.MatchString(s) {
		score += 5
	} else {
		score += 2 * float64(len(reWith.FindAllString(s, -1)))
	}

	switch lines := LineCount(sql); {
	case lines > 1000:
		score += 10
	case lines > 500:
		score += 5
	case lines > 100:
		score += 2
	}

	return round(score, 1)
}

func Category(score float64) string {
	switch {
	case score <= 5:
		return CategorySimple
	case score <= 15:
		return CategoryMedium
	case score <= 30:
		return CategoryComplex
	default:
		return CategoryVeryComplex
	}
}

func Hours(score float64) float64 {
	return round(score*hoursPerPoint, 1)
}

func LineCount(sql string) int {
	if strings.TrimSpace(sql) == "" {
		return 0
	}
	return strings.Count(strings.TrimRight(sql, "\n"), "\n") + 1
}

// Normalize reduces a query to a comparable form: comments dropped,
// literals replaced with ?, upper case, single spaces.
func Normalize(sql string) string {
	s := stripComments(sql)
	s = reQuoted.ReplaceAllString(s, "?")
	s = reNumber.ReplaceAllString(s, "?")
	s = strings.ToUpper(s)
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

// Fingerprint is the hex sha256 of the normalized query. Queries that
// differ only in literals, case or layout share a fingerprint.
func Fingerprint(sql string) string {
	sum := sha256.Sum256([]byte(Normalize(sql)))
	return hex.EncodeToString(sum[:])
}

// Similarity returns 0..100, blending token overlap (60%) with edit
// distance (40%) of the normalized queries.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 100
	}
	j := jaccard(reToken.FindAllString(na, -1), reToken.FindAllString(nb, -1))
	l := levenshteinRatio(na, nb)
	return round((0.6*j+0.4*l)*100, 2)
}

// Tables lists the distinct tables named after FROM or JOIN, upper case and sorted.
func Tables(sql string) []string {
	seen := map[string]struct{}{}
	for _, m := range reTable.FindAllStringSubmatch(stripComments(sql), -1) {
		seen[strings.ToUpper(m[1])] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func stripComments(sql string) string {
	s := reBlockComment.ReplaceAllString(sql, " ")
	return reLineComment.ReplaceAllString(s, " ")
}

func jaccard(a, b []string) float64 {
	sa := make(map[string]struct{}, len(a))
	for _, t := range a {
		sa[t] = struct{}{}
	}
	sb := make(map[string]struct{}, len(b))
	for _, t := range b {
		sb[t] = struct{}{}
	}
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(sa)+len(sb)-inter)
}

func levenshteinRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(ra, rb))/float64(longest)
}

// Levenshtein is the edit distance between a and b.
func Levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

package models

import (
	"sort"
	"strings"
)

// Complexity buckets as reported by the analysis endpoints.
const (
	ComplexitySimple      = "simple"
	ComplexityMedium      = "medium"
	ComplexityComplex     = "complex"
	ComplexityVeryComplex = "very_complex"
)

var complexityOrder = map[string]int{
	ComplexitySimple:      0,
	ComplexityMedium:      1,
	ComplexityComplex:     2,
	ComplexityVeryComplex: 3,
}

// NormalizeCategory folds "Very Complex", "very complex" and "very_complex"
// into the same key.
func NormalizeCategory(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
}

// CategoryLabel renders a category key for display: "very_complex" -> "Very Complex".
func CategoryLabel(c string) string {
	words := strings.Fields(strings.ReplaceAll(NormalizeCategory(c), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SortCategories orders known buckets from simple to very complex; unknown
// keys follow in lexical order.
func SortCategories(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		oi, iok := complexityOrder[NormalizeCategory(keys[i])]
		oj, jok := complexityOrder[NormalizeCategory(keys[j])]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
}

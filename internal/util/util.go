// Package util provides small helpers shared across the converter.
package util

import (
	"math"
	"slices"
	"strings"
)

// NearInteger reports whether x lies within tolerance of the nearest integer.
func NearInteger(x, tolerance float64) bool {
	return math.Abs(x-math.Round(x)) < tolerance
}

// SanitizeFileName makes a map name safe to use as a path element.
// Map names such as "de_dust2" pass through unchanged.
func SanitizeFileName(name string) string {
	r := strings.NewReplacer(
		" ", "_",
		":", "_",
		"/", "_",
		`\`, "_",
	)
	name = r.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

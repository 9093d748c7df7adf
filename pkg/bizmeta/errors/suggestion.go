package errors

import (
	"fmt"
	"strings"
)

// SuggestValue suggests the closest valid value when an enum column holds
// an unknown one. It uses Levenshtein distance to find similar values.
func SuggestValue(unknown string, validValues []string) string {
	if len(validValues) == 0 {
		return ""
	}

	// Find the closest match
	minDistance := 1000
	var bestMatch string

	for _, value := range validValues {
		dist := levenshteinDistance(strings.ToLower(unknown), value)
		if dist < minDistance {
			minDistance = dist
			bestMatch = value
		}
	}

	// Only suggest if the distance is reasonable
	if minDistance < 4 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fmt.Sprintf("Valid values: %s", strings.Join(validValues, ", "))
}

// SuggestMissingField suggests filling a required column.
func SuggestMissingField(fieldName string, exampleValue string) string {
	if exampleValue != "" {
		return fmt.Sprintf("Fill column '%s', e.g. %s", fieldName, exampleValue)
	}
	return fmt.Sprintf("Fill column '%s'", fieldName)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Create distance matrix
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first column and row
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

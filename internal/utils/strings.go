package utils

import "strings"

// NormalizeTicker returns the canonical form of an instrument ticker:
// trimmed and uppercased. Every store and provider boundary goes through
// this so that case-insensitive ticker matching holds everywhere.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ParseSymbols splits a comma-separated symbol list and returns trimmed,
// normalized, non-empty values. Returns nil for empty/whitespace-only input.
func ParseSymbols(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		normalized := NormalizeTicker(v)
		if normalized != "" {
			result = append(result, normalized)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

package pricelist

import (
	"regexp"
	"strings"
)

var trailingParenPattern = regexp.MustCompile(`^(.*\S)\s*\(([^)]+)\)\s*$`)

// ParseAreaHierarchy splits a compound area string into its parent area
// and sub category. "PARENT: CHILD" takes precedence over
// "PARENT (CHILD)"; a string matching neither comes back unchanged with
// no sub category.
func ParseAreaHierarchy(raw string) (parentArea, subCategory string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	if idx := strings.Index(raw, ":"); idx > 0 {
		parent := strings.TrimSpace(raw[:idx])
		sub := strings.TrimSpace(raw[idx+1:])
		if parent != "" && sub != "" {
			return parent, sub
		}
	}

	if m := trailingParenPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	return raw, ""
}

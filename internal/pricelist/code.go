package pricelist

import (
	"strconv"
	"strings"
)

// procedureCodeMaxLen bounds the text portion of a generated code.
const procedureCodeMaxLen = 32

// BuildProcedureCode derives a deterministic procedure code from a
// description. Short descriptions normalize and pass through unchanged;
// descriptions that overflow the length bound are truncated and suffixed
// with their row index so two long descriptions sharing a prefix never
// collide.
func BuildProcedureCode(description string, rowNumber int) string {
	code := normalizeCode(description)
	if code == "" {
		return ""
	}
	if len(code) <= procedureCodeMaxLen {
		return code
	}
	truncated := strings.TrimRight(code[:procedureCodeMaxLen], "_")
	return truncated + "_" + strconv.Itoa(rowNumber)
}

// normalizeCode uppercases and squeezes every non-alphanumeric run into
// a single underscore.
func normalizeCode(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(upper))
	lastUnderscore := false
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

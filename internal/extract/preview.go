package extract

import (
	"strings"
)

// TruncationMarker is appended to a preview that hit one of its caps.
const TruncationMarker = "[TRUNCATED]"

// BuildPreview renders rows as a bounded plain-text table for prompt
// embedding. Cells are joined with " | ", rows with newlines. The result
// never exceeds maxRows rows or maxChars characters; overflow is marked
// explicitly so the model knows the document continues.
func BuildPreview(rows []Row, maxRows, maxChars int) string {
	if maxRows <= 0 {
		maxRows = 100
	}
	if maxChars <= 0 {
		maxChars = 12000
	}

	truncated := false
	if len(rows) > maxRows {
		rows = rows[:maxRows]
		truncated = true
	}

	var b strings.Builder
	for _, row := range rows {
		line := strings.Join(row, " | ")
		if b.Len()+len(line)+1 > maxChars {
			truncated = true
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	preview := strings.TrimRight(b.String(), "\n")
	if truncated {
		preview += "\n" + TruncationMarker
	}
	return preview
}

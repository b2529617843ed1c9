package facility

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	bracketedPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	yearPattern      = regexp.MustCompile(`\b20\d{2}\b`)

	noisePhrases = []string{
		"price list", "pricelist", "tariff list", "for office use", "office use",
	}

	monthNames = []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
	}

	// genericTokens alone cannot identify a facility
	genericTokens = map[string]bool{
		"hospital": true, "clinic": true, "general": true, "center": true,
		"centre": true, "facility": true, "medical": true, "healthcare": true,
		"health": true, "specialist": true, "the": true, "of": true, "and": true,
	}

	// nonFacilityNames are document titles that masquerade as names
	nonFacilityNames = map[string]bool{
		"price list": true, "pricelist": true, "office use": true,
		"tariff": true, "tariff list": true, "services": true,
	}
)

// Resolver canonicalizes raw facility name candidates against the alias
// table, with operator overrides and a filename fallback gated by a
// confidence threshold.
type Resolver struct {
	table     *Table
	overrides map[string]string
	threshold float64
}

// NewResolver creates a resolver. overrides maps source file names to
// operator-curated facility names and wins over every inference stage;
// threshold in [0,1] gates the filename fallback (0 is fully permissive).
func NewResolver(table *Table, overrides map[string]string, threshold float64) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table, overrides: overrides, threshold: threshold}
}

// Override returns the operator-curated facility name for a source file,
// or empty.
func (r *Resolver) Override(sourceFile string) string {
	if r.overrides == nil {
		return ""
	}
	return r.overrides[sourceFile]
}

// Lookup exposes the alias entry backing a resolved name, or nil.
func (r *Resolver) Lookup(name string) *AliasEntry {
	return r.table.Lookup(name)
}

// Resolve canonicalizes a candidate facility name. Empty output means
// the candidate (and the filename fallback) could not be trusted as a
// real facility; callers must not emit records for the document.
func (r *Resolver) Resolve(candidate, sourceFile string) string {
	return r.ResolveWithThreshold(candidate, sourceFile, r.threshold)
}

// ResolveWithThreshold is Resolve with a per-call confidence threshold
// replacing the resolver's own.
func (r *Resolver) ResolveWithThreshold(candidate, sourceFile string, threshold float64) string {
	if name := r.Override(sourceFile); name != "" {
		return name
	}

	if name := r.resolveCandidate(candidate); name != "" {
		return name
	}

	// filename fallback, gated by confidence in the derived candidate
	fromFile := sanitize(strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile)))
	if fromFile == "" || strings.EqualFold(fromFile, strings.TrimSpace(candidate)) {
		return ""
	}
	if confidence(fromFile) < threshold {
		return ""
	}
	return r.resolveCandidate(fromFile)
}

func (r *Resolver) resolveCandidate(candidate string) string {
	name := sanitize(candidate)
	if name == "" {
		return ""
	}

	if entry := r.table.Lookup(name); entry != nil {
		return entry.Canonical
	}

	name = stripNoise(name)
	if name == "" {
		return ""
	}
	if entry := r.table.Lookup(name); entry != nil {
		return entry.Canonical
	}

	if rejectName(name) {
		return ""
	}
	return formatName(name)
}

// sanitize trims a file extension and normalizes separators/whitespace.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	if ext := filepath.Ext(s); len(ext) > 1 && len(ext) <= 5 {
		s = strings.TrimSuffix(s, ext)
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// stripNoise removes qualifiers, list-title phrases, months, and years
// that documents append to facility names.
func stripNoise(s string) string {
	s = bracketedPattern.ReplaceAllString(s, " ")
	lower := strings.ToLower(s)
	for _, phrase := range noisePhrases {
		for {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				break
			}
			s = s[:idx] + " " + s[idx+len(phrase):]
			lower = strings.ToLower(s)
		}
	}
	s = yearPattern.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if isMonth(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func isMonth(w string) bool {
	w = strings.ToLower(strings.Trim(w, ",.-"))
	for _, m := range monthNames {
		if w == m {
			return true
		}
	}
	return false
}

// rejectName reports whether a stripped candidate is still not a real
// facility name: a known document title, or generic words only.
func rejectName(s string) bool {
	if nonFacilityNames[strings.ToLower(s)] {
		return true
	}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if !genericTokens[normalizeToken(w)] {
			return false
		}
	}
	return true
}

// confidence scores how much of a candidate is distinguishing: the
// fraction of its words that are neither generic nor noise.
func confidence(s string) float64 {
	words := strings.Fields(strings.ToLower(stripNoise(s)))
	if len(words) == 0 {
		return 0
	}
	distinguishing := 0
	for _, w := range words {
		if !genericTokens[normalizeToken(w)] {
			distinguishing++
		}
	}
	return float64(distinguishing) / float64(len(words))
}

func normalizeToken(w string) string {
	return strings.Trim(strings.ToLower(w), ",.-:;")
}

// formatName title-cases each word while preserving short all-uppercase
// acronyms.
func formatName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) <= 5 && w == strings.ToUpper(w) && hasUpperLetter(w) {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func hasUpperLetter(w string) bool {
	for _, r := range w {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// matchKey reduces a name to lowercase alphanumerics for alias lookup.
func matchKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// InferType derives a coarse facility type from a resolved name and any
// tags already attached to it. Hospitals are the default for this corpus.
func InferType(name string, tags []string) string {
	candidates := []string{strings.ToLower(name)}
	for _, tag := range tags {
		candidates = append(candidates, strings.ToLower(tag))
	}

	for _, value := range candidates {
		switch {
		case strings.Contains(value, "teaching"):
			return "teaching_hospital"
		case strings.Contains(value, "orthopaedic") || strings.Contains(value, "orthopedic"):
			return "specialty_hospital"
		case strings.Contains(value, "specialist") || strings.Contains(value, "specialty"):
			return "specialty_hospital"
		case strings.Contains(value, "dental"):
			return "dental_clinic"
		case strings.Contains(value, "lab") || strings.Contains(value, "diagnostic"):
			return "diagnostic_lab"
		case strings.Contains(value, "maternity"):
			return "maternity_center"
		case strings.Contains(value, "clinic"):
			return "clinic"
		}
	}
	return "hospital"
}

// BuildID derives the stable facility identifier used on emitted
// records from the provider and resolved facility name.
func BuildID(provider, name string) string {
	normalized := identifier(name)
	if normalized == "" {
		return ""
	}
	if provider == "" {
		provider = "provider"
	}
	return provider + "_" + normalized
}

// identifier converts a display name to a lowercase underscore slug.
func identifier(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(lowered))
	lastUnderscore := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
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

package tags

import (
	"sort"
	"strings"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
)

// Hydrator merges curated facility tags, rule-derived tags, and
// metadata-derived tags onto price records. Hydration is idempotent:
// re-running it over an already hydrated record produces the same tag
// set and provenance.
type Hydrator struct {
	table *facility.Table
	rules []Rule
}

func NewHydrator(table *facility.Table, rules []Rule) *Hydrator {
	if table == nil {
		table = facility.DefaultTable()
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Hydrator{table: table, rules: rules}
}

// Hydrate fills in record.Tags and record.TagProvenance in place.
// Existing tags are preserved and merged with newly derived ones.
func (h *Hydrator) Hydrate(record *entities.PriceRecord) {
	if record == nil {
		return
	}

	set := make(map[string]struct{})
	for _, t := range record.Tags {
		if n := NormalizeTag(t); n != "" {
			set[n] = struct{}{}
		}
	}

	prov := record.Provenance
	if prov == nil {
		prov = &entities.TagProvenance{}
	}

	// Curated facility tags plus citations.
	var curated []string
	if entry := h.table.Lookup(record.FacilityName); entry != nil {
		curated = entry.Tags
		for _, t := range entry.Tags {
			n := NormalizeTag(t)
			if n == "" {
				continue
			}
			set[n] = struct{}{}
			prov.FacilityTags = appendUnique(prov.FacilityTags, n)
		}
		for _, c := range entry.Citations {
			prov.Citations = appendUnique(prov.Citations, c)
		}
	}

	if record.FacilityName != "" {
		if t := NormalizeTag(facility.InferType(record.FacilityName, curated)); t != "" {
			set[t] = struct{}{}
			prov.MetadataTags = appendUnique(prov.MetadataTags, t)
		}
	}

	// Rule matches over the record's searchable text.
	haystack := h.ruleText(record)
	for _, rule := range h.rules {
		if !rule.Pattern.MatchString(haystack) {
			continue
		}
		prov.RuleIDs = appendUnique(prov.RuleIDs, rule.ID)
		for _, t := range rule.Tags {
			if n := NormalizeTag(t); n != "" {
				set[n] = struct{}{}
			}
		}
	}

	// Metadata-derived tags.
	for _, t := range h.metadataTags(record) {
		set[t] = struct{}{}
		prov.MetadataTags = appendUnique(prov.MetadataTags, t)
	}

	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	record.Tags = tags
	record.Provenance = prov
}

func (h *Hydrator) ruleText(record *entities.PriceRecord) string {
	parts := []string{
		record.ProcedureDescription,
		record.ProcedureCode,
		record.ProcedureCategory,
		record.Metadata.Category,
		record.Metadata.Area,
	}
	return strings.Join(parts, " ")
}

func (h *Hydrator) metadataTags(record *entities.PriceRecord) []string {
	var out []string
	if record.Price == 0 {
		out = append(out, "free")
	}
	if n := NormalizeTag(record.Metadata.Category); n != "" {
		out = append(out, n)
	}
	if n := NormalizeTag(record.Metadata.Area); n != "" && !contains(out, n) {
		out = append(out, n)
	}
	if record.Metadata.Unit != nil {
		if n := NormalizeTag(string(*record.Metadata.Unit)); n != "" {
			out = append(out, n)
		}
	}
	if record.Metadata.PriceTier != nil {
		if n := NormalizeTag(string(*record.Metadata.PriceTier)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, existing := range list {
		if existing == v {
			return true
		}
	}
	return false
}

// NormalizeTag lowercases a tag and collapses every run of
// non-alphanumeric characters to a single underscore.
func NormalizeTag(tag string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(tag)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

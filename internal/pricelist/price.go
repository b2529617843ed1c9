package pricelist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
)

// PriceVariant is one priced option extracted from a single raw price
// cell. RawText always holds the exact source fragment that produced it.
type PriceVariant struct {
	Price   float64
	Tier    entities.PriceTier
	Unit    entities.PriceUnit
	RawText string
}

// ExpandResult is the full interpretation of one price cell.
type ExpandResult struct {
	Variants  []PriceVariant
	Breakdown []entities.BreakdownItem
	Unit      *entities.PriceUnit
	Qualifier string
}

var (
	// grouped or plain numbers with optional decimals
	numberPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

	totalLinePattern     = regexp.MustCompile(`(?i)^\s*TOTAL\b`)
	parentheticalPattern = regexp.MustCompile(`\(([^)]+)\)`)
	dependingOnPattern   = regexp.MustCompile(`(?i)depending on [^\n;,]+`)
)

var tierKeywords = []struct {
	words []string
	tier  entities.PriceTier
}{
	{[]string{"paediatric", "pediatric", "paed", "child"}, entities.TierPaediatric},
	{[]string{"adult"}, entities.TierAdult},
	{[]string{"executive"}, entities.TierExecutive},
	{[]string{"private"}, entities.TierPrivate},
	{[]string{"general"}, entities.TierGeneral},
}

var unitKeywords = []struct {
	words []string
	unit  entities.PriceUnit
}{
	{[]string{"per day", "per-day", "daily", "/day"}, entities.UnitPerDay},
	{[]string{"per hour", "per-hour", "hourly", "/hour", "/hr"}, entities.UnitPerHour},
	{[]string{"per week", "per-week", "weekly", "/week", "/wk"}, entities.UnitPerWeek},
	{[]string{"per month", "per-month", "monthly", "/month"}, entities.UnitPerMonth},
}

// ExpandVariants interprets one raw price cell, paired with its
// description, as one or more priced variants. A cell whose lines build
// up to a TOTAL collapses into a single consolidated variant carrying
// the breakdown; tiered cells expand into one variant per tier; a cell
// with no numeric content and no free marker yields no variants at all.
func ExpandVariants(rawPrice, description string) ExpandResult {
	text := stripDescriptionPrefix(rawPrice, description)
	res := ExpandResult{}

	combined := description + "\n" + text
	res.Unit = detectUnit(combined)
	res.Qualifier = detectQualifier(text)

	if total, breakdown, ok := collapseTotal(text); ok {
		res.Variants = []PriceVariant{{Price: total, RawText: strings.TrimSpace(text)}}
		res.Breakdown = breakdown
		applyUnit(res.Variants, res.Unit)
		return res
	}

	for _, segment := range splitSegments(text) {
		res.Variants = append(res.Variants, expandSegment(segment)...)
	}
	applyUnit(res.Variants, res.Unit)
	return res
}

// stripDescriptionPrefix drops a duplicate of the description that some
// documents repeat at the head of the price cell.
func stripDescriptionPrefix(price, description string) string {
	p := strings.TrimSpace(price)
	d := strings.TrimSpace(description)
	if d == "" || len(p) < len(d) {
		return p
	}
	if strings.EqualFold(p[:len(d)], d) {
		return strings.TrimLeft(p[len(d):], " \t\n:-")
	}
	return p
}

// collapseTotal detects a running-total cell. When a line beginning with
// TOTAL carries a number, the whole cell is one consolidated price and
// every preceding labeled amount becomes a breakdown entry.
func collapseTotal(text string) (float64, []entities.BreakdownItem, bool) {
	lines := strings.Split(text, "\n")
	totalIdx := -1
	var total float64

	for i, line := range lines {
		if !totalLinePattern.MatchString(line) {
			continue
		}
		if m := numberPattern.FindString(line); m != "" {
			total = parseNumber(m)
			totalIdx = i
			break
		}
	}
	if totalIdx < 0 {
		return 0, nil, false
	}

	var breakdown []entities.BreakdownItem
	for _, line := range lines[:totalIdx] {
		loc := findPriceNumber(line)
		if loc == nil {
			continue
		}
		label := strings.Trim(strings.TrimSpace(line[:loc[0]]), " \t:-–—")
		breakdown = append(breakdown, entities.BreakdownItem{
			Label:  label,
			Amount: parseNumber(line[loc[0]:loc[1]]),
		})
	}
	return total, breakdown, true
}

func splitSegments(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})
	segments := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// expandSegment interprets one line/segment of a price cell.
func expandSegment(segment string) []PriceVariant {
	tier := detectTier(segment)
	free := strings.Contains(strings.ToLower(segment), "free")

	numbers := findPriceNumbers(segment)
	if len(numbers) == 0 {
		if !free {
			return nil
		}
		if tier == "" {
			tier = entities.TierFree
		}
		return []PriceVariant{{Price: 0, Tier: tier, RawText: segment}}
	}

	variants := make([]PriceVariant, 0, len(numbers))
	for _, n := range numbers {
		variants = append(variants, PriceVariant{
			Price:   parseNumber(n),
			Tier:    tier,
			RawText: segment,
		})
	}
	return variants
}

func detectTier(s string) entities.PriceTier {
	lower := strings.ToLower(s)
	for _, tk := range tierKeywords {
		for _, w := range tk.words {
			if strings.Contains(lower, w) {
				return tk.tier
			}
		}
	}
	return ""
}

func detectUnit(s string) *entities.PriceUnit {
	lower := strings.ToLower(s)
	for _, uk := range unitKeywords {
		for _, w := range uk.words {
			if strings.Contains(lower, w) {
				u := uk.unit
				return &u
			}
		}
	}
	return nil
}

// detectQualifier pulls free-text pricing notes out of the cell:
// parenthetical remarks and "depending on ..." clauses.
func detectQualifier(text string) string {
	var notes []string
	for _, m := range parentheticalPattern.FindAllStringSubmatch(text, -1) {
		if note := strings.TrimSpace(m[1]); note != "" {
			notes = append(notes, note)
		}
	}
	withoutParens := parentheticalPattern.ReplaceAllString(text, "")
	for _, m := range dependingOnPattern.FindAllString(withoutParens, -1) {
		notes = append(notes, strings.TrimSpace(m))
	}
	return strings.Join(notes, "; ")
}

func applyUnit(variants []PriceVariant, unit *entities.PriceUnit) {
	if unit == nil {
		return
	}
	for i := range variants {
		variants[i].Unit = *unit
	}
}

// findPriceNumbers extracts the numeric tokens of a segment that can be
// prices, skipping tokens glued to letters so an age like "18YRS" is
// never read as an amount.
func findPriceNumbers(s string) []string {
	var out []string
	for _, loc := range numberPattern.FindAllStringIndex(s, -1) {
		if numberTouchesLetter(s, loc[0], loc[1]) {
			continue
		}
		out = append(out, s[loc[0]:loc[1]])
	}
	return out
}

// findPriceNumber returns the index range of the first price-like number
// in s, or nil.
func findPriceNumber(s string) []int {
	for _, loc := range numberPattern.FindAllStringIndex(s, -1) {
		if !numberTouchesLetter(s, loc[0], loc[1]) {
			return loc
		}
	}
	return nil
}

// A trailing letter marks a non-price token like an age ("18YRS"). A
// leading letter does too, except the bare naira shorthand "N5,000".
func numberTouchesLetter(s string, start, end int) bool {
	if end < len(s) && isLetterByte(s[end]) {
		return true
	}
	if start > 0 && isLetterByte(s[start-1]) {
		return s[start-1] != 'N' && s[start-1] != 'n'
	}
	return false
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

package tags

import (
	"regexp"
)

// Rule assigns tags to any record whose combined description, code,
// category, and area text matches its pattern. Rules are evaluated
// independently; every matching rule contributes its tags.
type Rule struct {
	ID      string
	Pattern *regexp.Regexp
	Tags    []string
}

// defaultRules is the static, ordered rule list shared by every parse.
var defaultRules = []Rule{
	{
		ID:      "imaging",
		Pattern: regexp.MustCompile(`(?i)x-?ray|ct scan|mri|ultrasound|radiograph|mammogra|fluoroscop|doppler|echo`),
		Tags:    []string{"imaging", "radiology"},
	},
	{
		ID:      "laboratory",
		Pattern: regexp.MustCompile(`(?i)\blab\b|laborator|blood test|urinalysis|culture|biopsy|histolog|haematolog|chemistr`),
		Tags:    []string{"laboratory", "diagnostics"},
	},
	{
		ID:      "surgery",
		Pattern: regexp.MustCompile(`(?i)surger|surgical|\bectomy\b|otomy|oplasty|excision|incision|theatre`),
		Tags:    []string{"surgical"},
	},
	{
		ID:      "maternity",
		Pattern: regexp.MustCompile(`(?i)matern|antenatal|postnatal|delivery|caesarean|cesarean|obstetric|labour ward`),
		Tags:    []string{"maternity", "obstetrics"},
	},
	{
		ID:      "dental",
		Pattern: regexp.MustCompile(`(?i)dental|tooth|teeth|oral|maxillofacial|orthodont|scaling and polishing`),
		Tags:    []string{"dental"},
	},
	{
		ID:      "consultation",
		Pattern: regexp.MustCompile(`(?i)consult|outpatient|follow.?up|registration|clinic visit`),
		Tags:    []string{"consultation", "outpatient"},
	},
	{
		ID:      "admission",
		Pattern: regexp.MustCompile(`(?i)admission|\bward\b|\bbed\b|inpatient|icu|intensive care|accommodation`),
		Tags:    []string{"admission", "inpatient"},
	},
	{
		ID:      "ambulance",
		Pattern: regexp.MustCompile(`(?i)ambulance|emergency transport|evacuation`),
		Tags:    []string{"ambulance", "emergency"},
	},
	{
		ID:      "immunization",
		Pattern: regexp.MustCompile(`(?i)vaccin|immuni[sz]ation|\bbcg\b|hepatitis b\b|tetanus`),
		Tags:    []string{"immunization", "preventive"},
	},
	{
		ID:      "dialysis",
		Pattern: regexp.MustCompile(`(?i)dialysis|renal|nephrolog`),
		Tags:    []string{"dialysis", "renal"},
	},
	{
		ID:      "physiotherapy",
		Pattern: regexp.MustCompile(`(?i)physiotherap|rehabilitat|occupational therap`),
		Tags:    []string{"physiotherapy", "therapy"},
	},
	{
		ID:      "mortuary",
		Pattern: regexp.MustCompile(`(?i)mortuar|embalm|autopsy|post.?mortem`),
		Tags:    []string{"mortuary"},
	},
}

// DefaultRules returns the static rule list.
func DefaultRules() []Rule {
	return defaultRules
}

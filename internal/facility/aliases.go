package facility

// AliasEntry maps the known spellings of one real-world facility to its
// canonical display name, together with curated tags and source
// citations. The table is process-wide static data, built once and never
// mutated.
type AliasEntry struct {
	Canonical string
	Aliases   []string
	Tags      []string
	Citations []string
}

var aliasTable = []AliasEntry{
	{
		Canonical: "Lagos State University Teaching Hospital (LASUTH)",
		Aliases: []string{
			"lasuth",
			"new lasuth",
			"lagos state university teaching hospital",
			"lasuth ikeja",
		},
		Tags:      []string{"teaching_hospital", "public", "tertiary_care", "ikeja"},
		Citations: []string{"https://lasuth.org.ng"},
	},
	{
		Canonical: "Lagos University Teaching Hospital (LUTH)",
		Aliases: []string{
			"luth",
			"lagos university teaching hospital",
			"luth idi araba",
		},
		Tags:      []string{"teaching_hospital", "public", "tertiary_care", "idi_araba"},
		Citations: []string{"https://luth.gov.ng"},
	},
	{
		Canonical: "National Orthopaedic Hospital Igbobi",
		Aliases: []string{
			"national orthopaedic hospital",
			"national orthopaedic hospital igbobi",
			"noh igbobi",
			"igbobi",
		},
		Tags:      []string{"orthopaedic", "public", "specialty_hospital"},
		Citations: []string{"https://nohlagos.gov.ng"},
	},
	{
		Canonical: "Federal Medical Centre Ebute-Metta",
		Aliases: []string{
			"federal medical centre ebute metta",
			"fmc ebute metta",
			"fmc ebutemetta",
		},
		Tags:      []string{"federal", "public", "general_hospital"},
		Citations: []string{"https://fmceb.gov.ng"},
	},
	{
		Canonical: "General Hospital Lagos",
		Aliases: []string{
			"general hospital lagos",
			"general hospital lagos island",
			"ghl",
		},
		Tags:      []string{"public", "general_hospital", "lagos_island"},
		Citations: []string{"https://lagosstate.gov.ng"},
	},
	{
		Canonical: "Massey Street Children's Hospital",
		Aliases: []string{
			"massey street childrens hospital",
			"massey street children hospital",
			"massey",
		},
		Tags:      []string{"paediatric", "public", "specialty_hospital"},
		Citations: []string{"https://lagosstate.gov.ng"},
	},
	{
		Canonical: "EKO Hospital",
		Aliases: []string{
			"eko hospital",
			"ekocorp",
			"eko hospitals ikeja",
		},
		Tags:      []string{"private", "multi_specialty"},
		Citations: []string{"https://ekohospitals.com"},
	},
	{
		Canonical: "R-Jolad Hospital",
		Aliases: []string{
			"r jolad hospital",
			"rjolad",
			"r jolad",
		},
		Tags:      []string{"private", "general_hospital", "gbagada"},
		Citations: []string{"https://rjolad.com"},
	},
}

// Table is the read-only alias index shared by every parse.
type Table struct {
	byKey map[string]*AliasEntry
}

// DefaultTable builds the static alias index.
func DefaultTable() *Table {
	t := &Table{byKey: make(map[string]*AliasEntry)}
	for i := range aliasTable {
		entry := &aliasTable[i]
		t.byKey[matchKey(entry.Canonical)] = entry
		for _, alias := range entry.Aliases {
			t.byKey[matchKey(alias)] = entry
		}
	}
	return t
}

// Lookup finds the alias entry for a display or alias name, or nil.
func (t *Table) Lookup(name string) *AliasEntry {
	return t.byKey[matchKey(name)]
}

package pricelist

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/extract"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
)

// ParseStats counts what happened to the rows of one document.
type ParseStats struct {
	LogicalRows  int
	RowsDropped  int
	RecordsBuilt int
}

// Parser converts extracted rows into price records.
type Parser struct {
	resolver *facility.Resolver
	logger   zerolog.Logger
}

// NewParser creates a row parser backed by the given facility resolver.
func NewParser(resolver *facility.Resolver, logger zerolog.Logger) *Parser {
	return &Parser{resolver: resolver, logger: logger}
}

// Parse runs the row pipeline: header detection, continuation merging,
// variant expansion, and record assembly. When the facility name cannot
// be resolved the whole document yields no records; a record is never
// emitted without a facility.
func (p *Parser) Parse(rows []extract.Row, ctx ParseContext) ([]entities.PriceRecord, ParseStats) {
	stats := ParseStats{}
	if len(rows) == 0 {
		return nil, stats
	}

	header := DetectHeader(rows)

	facilityName := p.resolveFacility(rows, header, ctx)
	if facilityName == "" {
		p.logger.Warn().
			Str("source_file", ctx.SourceFile).
			Msg("facility name rejected, dropping document")
		return nil, stats
	}
	facilityID := facility.BuildID(ctx.Provider, facilityName)

	var logical []LogicalRow
	if header.HasColumns() {
		logical = MergeContinuations(rows, header)
	} else {
		logical = heuristicRows(rows, header)
	}
	stats.LogicalRows = len(logical)

	now := time.Now().UTC()
	effective := ctx.EffectiveDate
	if effective.IsZero() {
		effective = now
	}

	var records []entities.PriceRecord
	currentArea := ""
	for _, lr := range logical {
		if lr.Area != "" {
			currentArea = lr.Area
		}

		desc := strings.TrimSpace(lr.Description)
		if desc == "" {
			stats.RowsDropped++
			continue
		}

		expanded := ExpandVariants(lr.PriceText, desc)
		if len(expanded.Variants) == 0 {
			// a priceless row with text is a category heading, not a loss
			if strings.TrimSpace(lr.PriceText) == "" && lr.Area == "" {
				currentArea = desc
			} else {
				stats.RowsDropped++
			}
			continue
		}

		parentArea, subCategory := ParseAreaHierarchy(currentArea)
		category := subCategory
		if category == "" {
			category = parentArea
		}
		code := BuildProcedureCode(desc, lr.RowNumber)

		for _, v := range expanded.Variants {
			rec := entities.PriceRecord{
				ID:                   uuid.NewString(),
				FacilityName:         facilityName,
				FacilityID:           facilityID,
				ProcedureCode:        code,
				ProcedureDescription: desc,
				ProcedureCategory:    category,
				Price:                v.Price,
				Currency:             ctx.Currency,
				EffectiveDate:        effective,
				LastUpdated:          now,
				Source:               ctx.Provider,
				Metadata: entities.RecordMetadata{
					SourceFile:     ctx.SourceFile,
					Area:           parentArea,
					Category:       category,
					Unit:           expanded.Unit,
					RawPriceText:   strings.TrimSpace(lr.PriceText),
					PriceQualifier: expanded.Qualifier,
					RowNumber:      lr.RowNumber,
					Breakdown:      expanded.Breakdown,
				},
			}
			if v.Tier != "" {
				tier := v.Tier
				rec.Metadata.PriceTier = &tier
			}
			records = append(records, rec)
		}
	}
	stats.RecordsBuilt = len(records)

	return records, stats
}

// resolveFacility picks the facility name for a document: an explicit
// context override, then the document title rows, then the file name,
// all passed through the alias resolver.
func (p *Parser) resolveFacility(rows []extract.Row, header *HeaderMap, ctx ParseContext) string {
	if name := ctx.FileFacilityNames[ctx.SourceFile]; name != "" {
		return name
	}
	if name := p.resolver.Override(ctx.SourceFile); name != "" {
		return name
	}

	resolve := func(candidate string) string {
		if ctx.ConfidenceThreshold > 0 {
			return p.resolver.ResolveWithThreshold(candidate, ctx.SourceFile, ctx.ConfidenceThreshold)
		}
		return p.resolver.Resolve(candidate, ctx.SourceFile)
	}

	if ctx.FacilityName != "" {
		if name := resolve(ctx.FacilityName); name != "" {
			return name
		}
	}
	return resolve(titleCandidate(rows, header))
}

// titleCandidate joins the first non-empty row above the header, where
// these documents usually carry their facility title.
func titleCandidate(rows []extract.Row, header *HeaderMap) string {
	limit := len(rows)
	if header != nil {
		limit = header.Row
	}
	for i := 0; i < limit; i++ {
		var parts []string
		for _, cell := range rows[i] {
			if cell = strings.TrimSpace(cell); cell != "" {
				parts = append(parts, cell)
			}
		}
		if len(parts) > 0 && hasLetters(strings.Join(parts, " ")) {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// heuristicRows interprets rows without a usable header: per row, the
// first lettered non-index cell is the description and the first
// numeric-or-free cell is the price, skipping the index column when
// descriptive text is present.
func heuristicRows(rows []extract.Row, header *HeaderMap) []LogicalRow {
	start := 0
	if header != nil {
		start = header.Row + 1
	}

	var logical []LogicalRow
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if rowBlank(row) {
			continue
		}

		desc, price := heuristicCells(row)
		if desc == "" && price == "" {
			continue
		}
		logical = append(logical, LogicalRow{
			Description: desc,
			PriceText:   price,
			RowNumber:   i + 1,
		})
	}
	return logical
}

func heuristicCells(row extract.Row) (desc, price string) {
	hasDescriptiveText := false
	for _, cell := range row {
		if hasLetters(cell) && !isPriceLike(cell) {
			hasDescriptiveText = true
			break
		}
	}

	for col, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if desc == "" && hasLetters(cell) && !isBareIndex(cell) && !isPriceLike(cell) {
			desc = cell
			continue
		}
		if price == "" && isPriceLike(cell) {
			// a leading bare integer is a row index, not a price,
			// as long as the row also has descriptive text
			if col == 0 && isBareIndex(cell) && hasDescriptiveText {
				continue
			}
			price = cell
		}
	}
	return desc, price
}

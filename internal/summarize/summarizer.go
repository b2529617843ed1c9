package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/providers"
	"github.com/zatekoja/pricelist-ingestion/internal/extract"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

const cacheKeyPrefix = "pricelist:summary:"

// Summarizer produces structured document summaries through the model
// boundary, content-addressed by file hash so each distinct document is
// summarized at most once.
type Summarizer struct {
	cache    providers.CacheProvider
	llm      providers.LLMProvider
	resolver *facility.Resolver
	logger   zerolog.Logger

	model        string
	maxFileBytes int64
	previewRows  int
	previewChars int
}

func NewSummarizer(
	cache providers.CacheProvider,
	llm providers.LLMProvider,
	resolver *facility.Resolver,
	logger zerolog.Logger,
	model string,
	maxFileBytes int64,
	previewRows, previewChars int,
) *Summarizer {
	return &Summarizer{
		cache:        cache,
		llm:          llm,
		resolver:     resolver,
		logger:       logger,
		model:        model,
		maxFileBytes: maxFileBytes,
		previewRows:  previewRows,
		previewChars: previewChars,
	}
}

// Summarize returns the structured summary for the document at path.
// A (nil, nil) return means the document yielded no usable summary;
// errors are reserved for infrastructure failures (cache, model call).
func (s *Summarizer) Summarize(ctx context.Context, path string) (*entities.DocumentSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read document", err)
	}
	if s.maxFileBytes > 0 && int64(len(data)) > s.maxFileBytes {
		return nil, apperrors.NewTooLargeError("document exceeds summarization size ceiling")
	}

	sum := sha256.Sum256(data)
	key := cacheKeyPrefix + hex.EncodeToString(sum[:])
	sourceFile := filepath.Base(path)

	if s.cache != nil {
		hit, err := s.cache.Exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if hit {
			raw, err := s.cache.Get(ctx, key)
			if err == nil {
				var cached entities.DocumentSummary
				if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
					return &cached, nil
				}
				s.logger.Warn().Str("key", key).Msg("discarding unreadable cached summary")
			}
		}
	}

	rows, err := extract.Rows(path, s.maxFileBytes)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", sourceFile).Msg("extraction failed, no summary")
		return nil, nil
	}
	preview := extract.BuildPreview(rows, s.previewRows, s.previewChars)
	if strings.TrimSpace(preview) == "" {
		return nil, nil
	}

	result, err := s.llm.Summarize(ctx, buildPrompt(sourceFile, preview))
	if err != nil {
		return nil, err
	}

	summary, ok := s.parseResponse(result.Content, sourceFile)
	if !ok {
		return nil, nil
	}
	summary.Metadata.Model = s.model
	summary.Metadata.TokensUsed = result.TokensUsed
	summary.Metadata.ExtractedAt = time.Now().UTC()

	if s.cache != nil {
		encoded, err := json.Marshal(summary)
		if err == nil {
			tags := []string{"summary", facility.BuildID("facility", summary.FacilityName)}
			if err := s.cache.Put(ctx, key, encoded, tags); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache summary")
			}
		}
	}

	return summary, nil
}

type llmSummaryPayload struct {
	FacilityName string `json:"facilityName"`
	Currency     string `json:"currency"`
	Items        []struct {
		Description string          `json:"description"`
		Price       json.RawMessage `json:"price"`
		Currency    string          `json:"currency"`
		Unit        string          `json:"unit"`
		Tier        string          `json:"tier"`
		Category    string          `json:"category"`
		Notes       string          `json:"notes"`
	} `json:"items"`
}

func (s *Summarizer) parseResponse(content, sourceFile string) (*entities.DocumentSummary, bool) {
	var payload llmSummaryPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		s.logger.Warn().Err(err).Str("file", sourceFile).Msg("model returned malformed summary")
		return nil, false
	}

	name := ""
	if s.resolver != nil {
		name = s.resolver.Resolve(payload.FacilityName, sourceFile)
	} else {
		name = strings.TrimSpace(payload.FacilityName)
	}
	if name == "" {
		s.logger.Warn().Str("file", sourceFile).Msg("summary has no trusted facility name")
		return nil, false
	}

	var warnings []string
	items := make([]entities.SummaryItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}
		price, ok := normalizePrice(strings.Trim(string(it.Price), `"`))
		if !ok {
			warnings = append(warnings, "dropped item with unusable price: "+desc)
			continue
		}
		items = append(items, entities.SummaryItem{
			Description: desc,
			Price:       price,
			Currency:    strings.TrimSpace(it.Currency),
			Unit:        strings.TrimSpace(it.Unit),
			Tier:        strings.ToLower(strings.TrimSpace(it.Tier)),
			Category:    strings.TrimSpace(it.Category),
			Notes:       strings.TrimSpace(it.Notes),
		})
	}
	if len(items) == 0 {
		s.logger.Warn().Str("file", sourceFile).Msg("summary contained no usable items")
		return nil, false
	}

	currency := strings.ToUpper(strings.TrimSpace(payload.Currency))
	if currency == "" {
		currency = "NGN"
	}

	return &entities.DocumentSummary{
		FacilityName: name,
		Currency:     currency,
		Items:        items,
		Metadata: entities.SummaryMetadata{
			SourceFile: sourceFile,
			Warnings:   warnings,
		},
	}, true
}

// normalizePrice strips currency symbols and grouping commas from a
// model-emitted amount and rejects anything that is not a finite,
// non-negative number.
func normalizePrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₦")
	cleaned = strings.TrimPrefix(cleaned, "#")
	if len(cleaned) > 1 && (cleaned[0] == 'N' || cleaned[0] == 'n') && (cleaned[1] >= '0' && cleaned[1] <= '9') {
		cleaned = cleaned[1:]
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, false
	}
	var value float64
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, false
	}
	return value, true
}

package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/repositories"
	"github.com/zatekoja/pricelist-ingestion/internal/extract"
	"github.com/zatekoja/pricelist-ingestion/internal/pricelist"
	"github.com/zatekoja/pricelist-ingestion/internal/summarize"
	"github.com/zatekoja/pricelist-ingestion/internal/tags"
	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

// IngestionSummary reports what one ingestion run did.
type IngestionSummary struct {
	FilesProcessed  int      `json:"files_processed"`
	FilesFailed     int      `json:"files_failed"`
	RowsExtracted   int      `json:"rows_extracted"`
	LogicalRows     int      `json:"logical_rows"`
	RowsDropped     int      `json:"rows_dropped"`
	RecordsBuilt    int      `json:"records_built"`
	RecordsCreated  int      `json:"records_created"`
	RecordsUpdated  int      `json:"records_updated"`
	RecordsIndexed  int      `json:"records_indexed"`
	ModelSummaries  int      `json:"model_summaries"`
	FailedFiles     []string `json:"failed_files,omitempty"`
}

func (s *IngestionSummary) merge(other *IngestionSummary) {
	s.FilesProcessed += other.FilesProcessed
	s.FilesFailed += other.FilesFailed
	s.RowsExtracted += other.RowsExtracted
	s.LogicalRows += other.LogicalRows
	s.RowsDropped += other.RowsDropped
	s.RecordsBuilt += other.RecordsBuilt
	s.RecordsCreated += other.RecordsCreated
	s.RecordsUpdated += other.RecordsUpdated
	s.RecordsIndexed += other.RecordsIndexed
	s.ModelSummaries += other.ModelSummaries
	s.FailedFiles = append(s.FailedFiles, other.FailedFiles...)
}

// IngestionOptions carries the per-run settings for an ingestion service.
type IngestionOptions struct {
	Provider      string
	Currency      string
	EffectiveDate time.Time
	MaxFileBytes  int64
	Concurrency   int

	// UseLLM forces the summarization path even when the row parser
	// produced records
	UseLLM bool
}

// IngestionService turns price list documents into persisted, indexed
// price records. The row parser is the primary path; the model
// summarizer is the fallback for documents the parser cannot read.
type IngestionService struct {
	parser     *pricelist.Parser
	summarizer *summarize.Summarizer
	hydrator   *tags.Hydrator
	recordRepo repositories.PriceRecordRepository
	indexRepo  repositories.PriceRecordIndexRepository
	opts       IngestionOptions
	logger     zerolog.Logger
}

func NewIngestionService(
	parser *pricelist.Parser,
	summarizer *summarize.Summarizer,
	hydrator *tags.Hydrator,
	recordRepo repositories.PriceRecordRepository,
	indexRepo repositories.PriceRecordIndexRepository,
	opts IngestionOptions,
	logger zerolog.Logger,
) *IngestionService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &IngestionService{
		parser:     parser,
		summarizer: summarizer,
		hydrator:   hydrator,
		recordRepo: recordRepo,
		indexRepo:  indexRepo,
		opts:       opts,
		logger:     logger,
	}
}

// IngestFile ingests one document end to end.
func (s *IngestionService) IngestFile(ctx context.Context, path string) (*IngestionSummary, error) {
	summary := &IngestionSummary{}
	sourceFile := filepath.Base(path)
	logger := s.logger.With().Str("file", sourceFile).Logger()

	records, err := s.buildRecords(ctx, path, sourceFile, summary, logger)
	if err != nil {
		return summary, err
	}
	if len(records) == 0 {
		logger.Warn().Msg("document produced no price records")
		summary.FilesProcessed++
		return summary, nil
	}

	if s.hydrator != nil {
		for i := range records {
			s.hydrator.Hydrate(&records[i])
		}
	}

	for i := range records {
		if err := s.sinkRecord(ctx, &records[i], summary); err != nil {
			return summary, err
		}
	}

	summary.FilesProcessed++
	logger.Info().
		Int("records", len(records)).
		Int("created", summary.RecordsCreated).
		Int("updated", summary.RecordsUpdated).
		Msg("ingested document")
	return summary, nil
}

// IngestDirectory ingests every supported document under dir with
// bounded concurrency. A failing file is recorded and skipped; it never
// aborts the run.
func (s *IngestionService) IngestDirectory(ctx context.Context, dir string) (*IngestionSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read ingest directory", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".txt", ".docx", ".xlsx":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	total := &IngestionSummary{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.Concurrency)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileSummary, err := s.IngestFile(ctx, path)
			mu.Lock()
			defer mu.Unlock()
			total.merge(fileSummary)
			if err != nil {
				total.FilesFailed++
				total.FailedFiles = append(total.FailedFiles, filepath.Base(path))
				s.logger.Error().Err(err).Str("file", filepath.Base(path)).Msg("failed to ingest document")
			}
		}(path)
	}
	wg.Wait()

	sort.Strings(total.FailedFiles)
	return total, ctx.Err()
}

// buildRecords runs the row parser, falling back to the model
// summarizer when the parser yields nothing or the run forces it.
func (s *IngestionService) buildRecords(ctx context.Context, path, sourceFile string, summary *IngestionSummary, logger zerolog.Logger) ([]entities.PriceRecord, error) {
	var records []entities.PriceRecord

	rows, err := extract.Rows(path, s.opts.MaxFileBytes)
	switch {
	case err == nil:
		summary.RowsExtracted += len(rows)
		parsed, stats := s.parser.Parse(rows, pricelist.ParseContext{
			SourceFile:    sourceFile,
			Currency:      s.opts.Currency,
			EffectiveDate: s.opts.EffectiveDate,
			Provider:      s.opts.Provider,
		})
		summary.LogicalRows += stats.LogicalRows
		summary.RowsDropped += stats.RowsDropped
		summary.RecordsBuilt += stats.RecordsBuilt
		records = parsed
	case apperrors.IsType(err, apperrors.ErrorTypeTooLarge):
		return nil, err
	default:
		logger.Warn().Err(err).Msg("row extraction failed, trying summarizer")
	}

	if s.summarizer != nil && (len(records) == 0 || s.opts.UseLLM) {
		docSummary, err := s.summarizer.Summarize(ctx, path)
		if err != nil {
			if !apperrors.IsType(err, apperrors.ErrorTypeExternal) {
				return nil, err
			}
			// a model outage is "no summary", never a file failure
			logger.Warn().Err(err).Msg("model summarization unavailable, keeping row-parsed records")
			docSummary = nil
		}
		if docSummary != nil {
			summary.ModelSummaries++
			converted := summarize.ToPriceRecords(docSummary, s.opts.Provider, s.opts.EffectiveDate)
			if len(converted) > 0 {
				summary.RecordsBuilt += len(converted) - len(records)
				records = converted
			}
		}
	}

	return records, nil
}

// sinkRecord upserts a record and mirrors it into the search index.
func (s *IngestionService) sinkRecord(ctx context.Context, record *entities.PriceRecord, summary *IngestionSummary) error {
	if s.recordRepo != nil {
		tier := ""
		if record.Metadata.PriceTier != nil {
			tier = string(*record.Metadata.PriceTier)
		}

		existing, err := s.recordRepo.GetByFacilityAndCode(ctx, record.FacilityID, record.ProcedureCode, tier)
		switch {
		case err == nil && existing != nil:
			record.ID = existing.ID
			if err := s.recordRepo.Update(ctx, record); err != nil {
				return err
			}
			summary.RecordsUpdated++
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
			if err := s.recordRepo.Create(ctx, record); err != nil {
				return err
			}
			summary.RecordsCreated++
		default:
			return err
		}
	}

	if s.indexRepo != nil {
		if err := s.indexRepo.Index(ctx, record); err != nil {
			return err
		}
		summary.RecordsIndexed++
	}

	return nil
}

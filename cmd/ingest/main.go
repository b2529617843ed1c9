package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/pricelist-ingestion/internal/adapters/cache"
	"github.com/zatekoja/pricelist-ingestion/internal/adapters/database"
	"github.com/zatekoja/pricelist-ingestion/internal/adapters/search"
	"github.com/zatekoja/pricelist-ingestion/internal/application/services"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/providers"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/repositories"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/openai"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/redis"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/observability"
	"github.com/zatekoja/pricelist-ingestion/internal/pricelist"
	"github.com/zatekoja/pricelist-ingestion/internal/summarize"
	"github.com/zatekoja/pricelist-ingestion/internal/tags"
	"github.com/zatekoja/pricelist-ingestion/pkg/config"
)

func main() {
	var (
		file   string
		dir    string
		dryRun bool
		useLLM bool
	)
	flag.StringVar(&file, "file", "", "ingest a single document")
	flag.StringVar(&dir, "dir", "", "ingest every supported document in a directory")
	flag.BoolVar(&dryRun, "dry-run", false, "parse without writing to the database or search index")
	flag.BoolVar(&useLLM, "llm", false, "force the model summarization path")
	flag.Parse()

	if (file == "") == (dir == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("pricelist-ingest", cfg.Log.Level, cfg.Log.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := buildService(ctx, cfg, dryRun, useLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build ingestion service")
	}
	defer cleanup()

	var summary *services.IngestionSummary
	if file != "" {
		summary, err = svc.IngestFile(ctx, file)
	} else {
		summary, err = svc.IngestDirectory(ctx, dir)
	}
	if summary != nil {
		encoded, _ := json.Marshal(summary)
		log.Info().RawJSON("summary", encoded).Msg("ingestion finished")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
}

// buildService wires the parser, summarizer, and sinks. In dry-run mode
// the database, cache, and search clients are never dialed.
func buildService(ctx context.Context, cfg *config.Config, dryRun, useLLM bool) (*services.IngestionService, func(), error) {
	logger := log.Logger

	overrides, err := loadOverrides(cfg.Facility.OverridesFile)
	if err != nil {
		return nil, nil, err
	}
	resolver := facility.NewResolver(facility.DefaultTable(), overrides, cfg.Facility.ConfidenceThreshold)
	parser := pricelist.NewParser(resolver, logger)
	hydrator := tags.NewHydrator(facility.DefaultTable(), tags.DefaultRules())

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var summarizer *summarize.Summarizer
	if cfg.OpenAI.APIKey != "" {
		llm, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			cleanup()
			return nil, nil, err
		}

		var summaryCache providers.CacheProvider
		if !dryRun {
			redisClient, err := redis.NewClient(&cfg.Redis)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			cleanups = append(cleanups, func() { redisClient.Close() })
			summaryCache = cache.NewRedisAdapter(redisClient)
		}

		summarizer = summarize.NewSummarizer(
			summaryCache, llm, resolver, logger,
			cfg.OpenAI.Model,
			cfg.Parser.MaxFileBytes,
			cfg.Parser.PreviewMaxRows,
			cfg.Parser.PreviewMaxChars,
		)
	}

	var recordRepo repositories.PriceRecordRepository
	var indexRepo repositories.PriceRecordIndexRepository
	if !dryRun {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { pgClient.Close() })
		recordRepo = database.NewPriceRecordAdapter(pgClient)

		tsClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		indexRepo = adapter
	}

	opts := services.IngestionOptions{
		Provider:      cfg.Provider.ID,
		Currency:      cfg.Provider.DefaultCurrency,
		EffectiveDate: cfg.Provider.DefaultEffectiveDate(),
		MaxFileBytes:  cfg.Parser.MaxFileBytes,
		Concurrency:   cfg.Ingest.Concurrency,
		UseLLM:        useLLM || cfg.Parser.UseLLM,
	}

	return services.NewIngestionService(parser, summarizer, hydrator, recordRepo, indexRepo, opts, logger), cleanup, nil
}

// loadOverrides reads the optional JSON map of source file name to
// operator-curated facility name.
func loadOverrides(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}
	overrides := map[string]string{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file: %w", err)
	}
	return overrides, nil
}

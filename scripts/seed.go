package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/zatekoja/pricelist-ingestion/internal/adapters/search"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/pricelist-ingestion/pkg/config"
)

// Bootstraps the storage backing the ingestion pipeline: creates the
// price_records table if missing and provisions the search collection.
// Safe to re-run.

const priceRecordsDDL = `
CREATE TABLE IF NOT EXISTS price_records (
    id                    TEXT PRIMARY KEY,
    facility_name         TEXT NOT NULL,
    facility_id           TEXT NOT NULL,
    procedure_code        TEXT NOT NULL,
    procedure_description TEXT NOT NULL,
    procedure_category    TEXT,
    price                 DOUBLE PRECISION NOT NULL,
    currency              TEXT NOT NULL,
    effective_date        TIMESTAMPTZ NOT NULL,
    last_updated          TIMESTAMPTZ NOT NULL,
    source                TEXT NOT NULL,
    price_tier            TEXT NOT NULL DEFAULT '',
    tags                  TEXT[] NOT NULL DEFAULT '{}',
    metadata              JSONB NOT NULL DEFAULT '{}',
    tag_provenance        JSONB,
    UNIQUE (facility_id, procedure_code, price_tier)
);

CREATE INDEX IF NOT EXISTS idx_price_records_facility ON price_records (facility_id);
CREATE INDEX IF NOT EXISTS idx_price_records_source_file ON price_records ((metadata->>'sourceFile'));
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pgClient.DB().ExecContext(ctx, priceRecordsDDL); err != nil {
		log.Fatalf("Failed to create price_records table: %v", err)
	}
	log.Println("price_records table ready")

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Typesense unavailable, skipping search schema: %v", err)
		os.Exit(0)
	}

	indexRepo := search.NewTypesenseAdapter(tsClient)
	if err := indexRepo.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to provision search collection: %v", err)
	}
	log.Println("search collection ready")
}

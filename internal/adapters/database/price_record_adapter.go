package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/repositories"
	"github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

const priceRecordsTable = "price_records"

var priceRecordColumns = []interface{}{
	"id", "facility_name", "facility_id", "procedure_code",
	"procedure_description", "procedure_category", "price", "currency",
	"effective_date", "last_updated", "source", "price_tier", "tags",
	"metadata", "tag_provenance",
}

// PriceRecordAdapter implements PriceRecordRepository
type PriceRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPriceRecordAdapter creates a new price record adapter
func NewPriceRecordAdapter(client *postgres.Client) repositories.PriceRecordRepository {
	return &PriceRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new price record
func (a *PriceRecordAdapter) Create(ctx context.Context, record *entities.PriceRecord) error {
	row, err := a.toRow(record)
	if err != nil {
		return err
	}

	query, args, err := a.db.Insert(priceRecordsTable).Rows(row).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create price record", err)
	}

	return nil
}

// Update replaces an existing price record by ID
func (a *PriceRecordAdapter) Update(ctx context.Context, record *entities.PriceRecord) error {
	row, err := a.toRow(record)
	if err != nil {
		return err
	}

	query, args, err := a.db.Update(priceRecordsTable).
		Set(row).
		Where(goqu.Ex{"id": record.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update price record", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError("price record not found: " + record.ID)
	}

	return nil
}

// GetByFacilityAndCode retrieves the current record for a
// facility/procedure/tier triple
func (a *PriceRecordAdapter) GetByFacilityAndCode(ctx context.Context, facilityID, procedureCode, tier string) (*entities.PriceRecord, error) {
	query, args, err := a.db.Select(priceRecordColumns...).
		From(priceRecordsTable).
		Where(goqu.Ex{
			"facility_id":    facilityID,
			"procedure_code": procedureCode,
			"price_tier":     tier,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record, err := a.scanRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("price record not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get price record", err)
	}
	return record, nil
}

// ListBySourceFile retrieves all records ingested from one document
func (a *PriceRecordAdapter) ListBySourceFile(ctx context.Context, sourceFile string) ([]*entities.PriceRecord, error) {
	query, args, err := a.db.Select(priceRecordColumns...).
		From(priceRecordsTable).
		Where(goqu.L("metadata->>'sourceFile'").Eq(sourceFile)).
		Order(goqu.I("procedure_code").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list price records", err)
	}
	defer rows.Close()

	var records []*entities.PriceRecord
	for rows.Next() {
		record, err := a.scanRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan price record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read price records", err)
	}

	return records, nil
}

func (a *PriceRecordAdapter) toRow(record *entities.PriceRecord) (goqu.Record, error) {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode record metadata", err)
	}

	var provenance []byte
	if record.Provenance != nil {
		provenance, err = json.Marshal(record.Provenance)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode tag provenance", err)
		}
	}

	tier := ""
	if record.Metadata.PriceTier != nil {
		tier = string(*record.Metadata.PriceTier)
	}

	return goqu.Record{
		"id":                    record.ID,
		"facility_name":         record.FacilityName,
		"facility_id":           record.FacilityID,
		"procedure_code":        record.ProcedureCode,
		"procedure_description": record.ProcedureDescription,
		"procedure_category":    sql.NullString{String: record.ProcedureCategory, Valid: record.ProcedureCategory != ""},
		"price":                 record.Price,
		"currency":              record.Currency,
		"effective_date":        record.EffectiveDate,
		"last_updated":          record.LastUpdated,
		"source":                record.Source,
		"price_tier":            tier,
		"tags":                  pq.Array(record.Tags),
		"metadata":              metadata,
		"tag_provenance":        nullBytes(provenance),
	}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *PriceRecordAdapter) scanRecord(scanner rowScanner) (*entities.PriceRecord, error) {
	record := &entities.PriceRecord{}
	var (
		category   sql.NullString
		tier       string
		metadata   []byte
		provenance []byte
	)

	err := scanner.Scan(
		&record.ID,
		&record.FacilityName,
		&record.FacilityID,
		&record.ProcedureCode,
		&record.ProcedureDescription,
		&category,
		&record.Price,
		&record.Currency,
		&record.EffectiveDate,
		&record.LastUpdated,
		&record.Source,
		&tier,
		pq.Array(&record.Tags),
		&metadata,
		&provenance,
	)
	if err != nil {
		return nil, err
	}

	record.ProcedureCategory = category.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, err
		}
	}
	if len(provenance) > 0 {
		prov := &entities.TagProvenance{}
		if err := json.Unmarshal(provenance, prov); err != nil {
			return nil, err
		}
		record.Provenance = prov
	}
	if tier != "" && record.Metadata.PriceTier == nil {
		t := entities.PriceTier(tier)
		record.Metadata.PriceTier = &t
	}
	record.EffectiveDate = record.EffectiveDate.UTC()
	record.LastUpdated = record.LastUpdated.UTC()

	return record, nil
}

func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}

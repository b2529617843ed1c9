package repositories

import (
	"context"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
)

// PriceRecordRepository defines persistence for emitted price records.
type PriceRecordRepository interface {
	Create(ctx context.Context, record *entities.PriceRecord) error
	Update(ctx context.Context, record *entities.PriceRecord) error

	// GetByFacilityAndCode retrieves the current record for a
	// facility/procedure/tier triple, or a not-found error. Tier is
	// empty for untiered records.
	GetByFacilityAndCode(ctx context.Context, facilityID, procedureCode, tier string) (*entities.PriceRecord, error)

	// ListBySourceFile retrieves all records ingested from one document
	ListBySourceFile(ctx context.Context, sourceFile string) ([]*entities.PriceRecord, error)
}

// PriceRecordIndexRepository defines the search index sink for records.
type PriceRecordIndexRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, record *entities.PriceRecord) error
	Delete(ctx context.Context, id string) error
}

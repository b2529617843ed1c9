package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/entities"
	"github.com/zatekoja/pricelist-ingestion/internal/domain/repositories"
	tsclient "github.com/zatekoja/pricelist-ingestion/internal/infrastructure/clients/typesense"
)

const collectionName = "price_records"

// TypesenseAdapter implements the price record search index sink
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements PriceRecordIndexRepository
var _ repositories.PriceRecordIndexRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	// Create collection
	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "facility_name", Type: "string"},
			{Name: "facility_id", Type: "string", Facet: pointer.True()},
			{Name: "procedure_code", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "price", Type: "float", Facet: pointer.True()},
			{Name: "currency", Type: "string", Facet: pointer.True()},
			{Name: "price_tier", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "source_file", Type: "string", Optional: pointer.True()},
			{Name: "effective_date", Type: "int64"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a price record document
func (a *TypesenseAdapter) Index(ctx context.Context, record *entities.PriceRecord) error {
	tier := ""
	if record.Metadata.PriceTier != nil {
		tier = string(*record.Metadata.PriceTier)
	}

	document := map[string]interface{}{
		"id":             record.ID,
		"facility_name":  record.FacilityName,
		"facility_id":    record.FacilityID,
		"procedure_code": record.ProcedureCode,
		"description":    record.ProcedureDescription,
		"category":       record.ProcedureCategory,
		"price":          record.Price,
		"currency":       record.Currency,
		"price_tier":     tier,
		"tags":           record.Tags,
		"source_file":    record.Metadata.SourceFile,
		"effective_date": record.EffectiveDate.Unix(),
		"created_at":     record.LastUpdated.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index price record: %w", err)
	}

	return nil
}

// Delete removes a price record from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete price record from index: %w", err)
	}
	return nil
}

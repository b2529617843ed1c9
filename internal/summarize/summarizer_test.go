package summarize

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/pricelist-ingestion/internal/domain/providers"
	"github.com/zatekoja/pricelist-ingestion/internal/facility"
	apperrors "github.com/zatekoja/pricelist-ingestion/pkg/errors"
)

type fakeLLM struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (f *fakeLLM) Summarize(ctx context.Context, prompt string) (*providers.LLMResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls += 1
	if f.err != nil {
		return nil, f.err
	}
	return &providers.LLMResult{Content: f.response, TokensUsed: 42}, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("key not found: " + key)
	}
	return v, nil
}

func (f *fakeCache) Put(ctx context.Context, key string, value []byte, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

const validResponse = `{
	"facilityName": "new lasuth",
	"currency": "ngn",
	"items": [
		{"description": "Consultation", "price": 2000, "category": "OPD"},
		{"description": "Ward Admission", "price": "5,000", "tier": "adult", "unit": "per_day"},
		{"description": "Immunization", "price": 0, "tier": "free"}
	]
}`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lasuth.csv")
	content := "DESCRIPTION,PRICE\nConsultation,2,000\nWard Admission,5,000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestSummarizer(cache providers.CacheProvider, llm providers.LLMProvider) *Summarizer {
	resolver := facility.NewResolver(facility.DefaultTable(), nil, 0.5)
	return NewSummarizer(cache, llm, resolver, zerolog.Nop(), "gpt-4o-mini", 1<<20, 50, 8000)
}

func TestSummarize_ParsesModelOutput(t *testing.T) {
	llm := &fakeLLM{response: validResponse}
	s := newTestSummarizer(newFakeCache(), llm)

	summary, err := s.Summarize(context.Background(), writeSampleCSV(t))
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, "Lagos State University Teaching Hospital (LASUTH)", summary.FacilityName)
	assert.Equal(t, "NGN", summary.Currency)
	require.Len(t, summary.Items, 3)
	assert.Equal(t, 2000.0, summary.Items[0].Price)
	assert.Equal(t, 5000.0, summary.Items[1].Price)
	assert.Equal(t, "adult", summary.Items[1].Tier)
	assert.Equal(t, 0.0, summary.Items[2].Price)
	assert.Equal(t, "gpt-4o-mini", summary.Metadata.Model)
	assert.Equal(t, 42, summary.Metadata.TokensUsed)
	assert.Equal(t, "lasuth.csv", summary.Metadata.SourceFile)
}

func TestSummarize_CachedByContentHash(t *testing.T) {
	llm := &fakeLLM{response: validResponse}
	cache := newFakeCache()
	s := newTestSummarizer(cache, llm)
	path := writeSampleCSV(t)

	first, err := s.Summarize(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := s.Summarize(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, first.FacilityName, second.FacilityName)
	assert.Len(t, second.Items, len(first.Items))
}

func TestSummarize_MalformedModelOutputMeansNoSummary(t *testing.T) {
	llm := &fakeLLM{response: "not json at all"}
	s := newTestSummarizer(newFakeCache(), llm)

	summary, err := s.Summarize(context.Background(), writeSampleCSV(t))
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummarize_UntrustedFacilityMeansNoSummary(t *testing.T) {
	llm := &fakeLLM{response: `{"facilityName": "PRICE LIST", "items": [{"description": "A", "price": 100}]}`}
	s := newTestSummarizer(newFakeCache(), llm)

	path := filepath.Join(t.TempDir(), "PRICE_LIST.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,100\n"), 0o644))

	summary, err := s.Summarize(context.Background(), path)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummarize_DropsUnusablePrices(t *testing.T) {
	llm := &fakeLLM{response: `{
		"facilityName": "new lasuth",
		"items": [
			{"description": "Valid", "price": "N2,500"},
			{"description": "Negative", "price": -5},
			{"description": "Garbage", "price": "call us"}
		]
	}`}
	s := newTestSummarizer(newFakeCache(), llm)

	summary, err := s.Summarize(context.Background(), writeSampleCSV(t))
	require.NoError(t, err)
	require.NotNil(t, summary)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2500.0, summary.Items[0].Price)
	assert.Len(t, summary.Metadata.Warnings, 2)
}

func TestSummarize_ModelErrorSurfaces(t *testing.T) {
	llm := &fakeLLM{err: apperrors.NewExternalError("model unavailable", nil)}
	s := newTestSummarizer(newFakeCache(), llm)

	_, err := s.Summarize(context.Background(), writeSampleCSV(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestSummarize_FileOverCeilingRejected(t *testing.T) {
	resolver := facility.NewResolver(facility.DefaultTable(), nil, 0.5)
	s := NewSummarizer(newFakeCache(), &fakeLLM{response: validResponse}, resolver, zerolog.Nop(), "m", 8, 50, 8000)

	_, err := s.Summarize(context.Background(), writeSampleCSV(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTooLarge))
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"5000", 5000, true},
		{"5,000", 5000, true},
		{"N5,000", 5000, true},
		{"₦1,200.50", 1200.50, true},
		{"#300", 300, true},
		{"0", 0, true},
		{"-10", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := normalizePrice(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		if tt.ok {
			assert.Equal(t, tt.expected, got, tt.input)
		}
	}
}

func TestBuildPrompt_AsksForFacilityInference(t *testing.T) {
	prompt := buildPrompt("lasuth.csv", "DESCRIPTION | PRICE")

	assert.Contains(t, prompt, "infer it from the document title rows, the column headers, or the source file name")
	assert.Contains(t, prompt, "Source file: lasuth.csv")
	assert.Contains(t, prompt, "Document preview:")
}

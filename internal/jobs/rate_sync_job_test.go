package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/warehouse"
)

type fakeRateSource struct {
	rows []warehouse.RateRow
	err  error
}

func (f *fakeRateSource) GetCurrencyRates(ctx context.Context, base string, targets []string, asOf time.Time) ([]warehouse.RateRow, error) {
	return f.rows, f.err
}

type fakeRateStore struct {
	upserted []*domain.CurrencyRate
	failOn   string
}

func (f *fakeRateStore) Upsert(ctx context.Context, rate *domain.CurrencyRate) error {
	if rate.ToCurrency == f.failOn {
		return errors.New("constraint violation")
	}
	f.upserted = append(f.upserted, rate)
	return nil
}

func TestRateSyncJobUpsertsWarehouseRows(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	source := &fakeRateSource{rows: []warehouse.RateRow{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.NewFromFloat(0.92), EffectiveDate: day},
		{FromCurrency: "USD", ToCurrency: "NOK", Rate: decimal.NewFromFloat(10.45), EffectiveDate: day},
	}}
	store := &fakeRateStore{}

	job := NewRateSyncJob(source, store, "USD", []string{"EUR", "NOK"}, zap.NewNop(), time.Second)
	job.Run()

	assert.Len(t, store.upserted, 2)
	for _, rate := range store.upserted {
		assert.Equal(t, domain.CurrencyRateSourceWarehouse, rate.Source)
		assert.Equal(t, "USD", rate.FromCurrency)
		assert.Equal(t, day, rate.EffectiveDate)
	}
}

func TestRateSyncJobContinuesPastFailedRow(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	source := &fakeRateSource{rows: []warehouse.RateRow{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.NewFromFloat(0.92), EffectiveDate: day},
		{FromCurrency: "USD", ToCurrency: "NOK", Rate: decimal.NewFromFloat(10.45), EffectiveDate: day},
	}}
	store := &fakeRateStore{failOn: "EUR"}

	job := NewRateSyncJob(source, store, "USD", []string{"EUR", "NOK"}, zap.NewNop(), time.Second)
	job.Run()

	// The failed row is skipped, the rest still land
	assert.Len(t, store.upserted, 1)
	assert.Equal(t, "NOK", store.upserted[0].ToCurrency)
}

func TestRateSyncJobFetchFailureIsNonFatal(t *testing.T) {
	source := &fakeRateSource{err: errors.New("warehouse unreachable")}
	store := &fakeRateStore{}

	job := NewRateSyncJob(source, store, "USD", []string{"EUR"}, zap.NewNop(), time.Second)
	job.Run()

	assert.Empty(t, store.upserted)
}

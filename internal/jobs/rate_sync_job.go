package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/warehouse"
)

// RateSyncJobName is the name of the currency rate sync job.
const RateSyncJobName = "currency_rate_sync"

// DefaultRateSyncTimeout bounds a single sync run.
const DefaultRateSyncTimeout = 2 * time.Minute

// RateSource fetches currency rates from the data warehouse.
// The interface lets the job run against the warehouse client without
// importing the rest of its surface.
type RateSource interface {
	GetCurrencyRates(ctx context.Context, base string, targets []string, asOf time.Time) ([]warehouse.RateRow, error)
}

// RateStore persists synced rates. Upsert keys on the
// (from, to, effective date) unique index so re-runs are harmless.
type RateStore interface {
	Upsert(ctx context.Context, rate *domain.CurrencyRate) error
}

// RateSyncJob pulls the day's currency rates from the warehouse and
// upserts them as warehouse-sourced rows. Manually entered rates for
// other dates are left untouched.
type RateSyncJob struct {
	source     RateSource
	store      RateStore
	base       string
	currencies []string
	logger     *zap.Logger
	timeout    time.Duration
}

// NewRateSyncJob creates a new currency rate sync job.
func NewRateSyncJob(source RateSource, store RateStore, base string, currencies []string, logger *zap.Logger, timeout time.Duration) *RateSyncJob {
	return &RateSyncJob{
		source:     source,
		store:      store,
		base:       base,
		currencies: currencies,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes one sync pass. It is called by the scheduler according
// to the configured cron expression.
func (j *RateSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting currency rate sync",
		zap.String("base_currency", j.base),
		zap.Strings("currencies", j.currencies))

	rows, err := j.source.GetCurrencyRates(ctx, j.base, j.currencies, time.Now().UTC())
	if err != nil {
		j.logger.Error("currency rate fetch failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	var synced, failed int
	for i := range rows {
		row := &rows[i]
		rate := &domain.CurrencyRate{
			FromCurrency:  row.FromCurrency,
			ToCurrency:    row.ToCurrency,
			Rate:          row.Rate,
			EffectiveDate: row.EffectiveDate,
			Source:        domain.CurrencyRateSourceWarehouse,
		}
		if err := j.store.Upsert(ctx, rate); err != nil {
			failed++
			j.logger.Error("failed to upsert currency rate",
				zap.String("from", row.FromCurrency),
				zap.String("to", row.ToCurrency),
				zap.Error(err))
			continue
		}
		synced++
	}

	j.logger.Info("currency rate sync completed",
		zap.Int("synced", synced),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterRateSyncJob registers the currency rate sync job with the scheduler.
func RegisterRateSyncJob(scheduler *Scheduler, source RateSource, store RateStore, base string, currencies []string, logger *zap.Logger, cronExpr string) error {
	job := NewRateSyncJob(source, store, base, currencies, logger, DefaultRateSyncTimeout)
	return scheduler.AddJob(RateSyncJobName, cronExpr, job.Run)
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
)

func newEstimateService(f *fixtures) *service.EstimateService {
	return service.NewEstimateService(
		repository.NewEstimateRepository(f.db),
		repository.NewQuoteRepository(f.db),
		repository.NewOpportunityRepository(f.db),
		repository.NewOpportunityLockRepository(f.db),
		zap.NewNop(),
	)
}

func TestEstimateCreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)
	assert.Equal(t, domain.EstimateStatusDraft, dto.Status)
	assert.Equal(t, "USD", dto.Currency) // inherited from the opportunity

	got, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "Baseline", got.Name)
}

func TestEstimatePhaseRowOrderIncreasesAndSurvivesDeletes(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)

	var orders []int
	for _, name := range []string{"Discovery", "Build", "Rollout"} {
		phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: name})
		require.NoError(t, err)
		orders = append(orders, phase.RowOrder)
	}
	assert.Less(t, orders[0], orders[1])
	assert.Less(t, orders[1], orders[2])

	reloaded, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Phases, 3)

	// Delete the middle phase; the survivors keep their numbers and the
	// next insert continues past the highest ever used.
	require.NoError(t, svc.DeletePhase(ctx, reloaded.Phases[1].ID))

	after, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, after.Phases, 2)
	assert.Equal(t, orders[0], after.Phases[0].RowOrder)
	assert.Equal(t, orders[2], after.Phases[1].RowOrder)

	next, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "Hypercare"})
	require.NoError(t, err)
	assert.Greater(t, next.RowOrder, orders[2])
}

func TestEstimateLineItemRowOrderWithinPhase(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)
	phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "Build"})
	require.NoError(t, err)

	first, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{Description: "dev"})
	require.NoError(t, err)
	second, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{Description: "qa"})
	require.NoError(t, err)
	assert.Less(t, first.RowOrder, second.RowOrder)

	require.NoError(t, svc.DeleteLineItem(ctx, first.ID))
	third, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{Description: "pm"})
	require.NoError(t, err)
	assert.Greater(t, third.RowOrder, second.RowOrder)
}

func TestEstimateWritesRejectedWhenOpportunityLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)
	lockRepo := repository.NewOpportunityLockRepository(f.db)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)
	phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "Build"})
	require.NoError(t, err)

	require.NoError(t, lockRepo.Ensure(ctx, opp.ID, nil))

	name := "Renamed"
	_, err = svc.Update(ctx, dto.ID, &domain.UpdateEstimateRequest{Name: &name})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	_, err = svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "More"})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	_, err = svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{Description: "dev"})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	err = svc.Delete(ctx, dto.ID)
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	// Reads are unaffected
	_, err = svc.GetByID(ctx, dto.ID)
	assert.NoError(t, err)
}

func TestEstimateLockedByActiveQuote(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)
	quoteSvc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)

	quote, err := quoteSvc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{SourceEstimateID: &dto.ID})
	require.NoError(t, err)
	_, err = quoteSvc.Activate(ctx, quote.ID)
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, dto.ID, &domain.UpdateEstimateRequest{Name: &name})
	assert.ErrorIs(t, err, service.ErrEstimateLocked)

	// Deactivating the quote lifts the quote-scoped lock
	_, err = quoteSvc.Deactivate(ctx, quote.ID)
	require.NoError(t, err)
	_, err = svc.Update(ctx, dto.ID, &domain.UpdateEstimateRequest{Name: &name})
	assert.NoError(t, err)
}

func TestEstimateListInvalidStatusYieldsEmptyResult(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	_, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, 0, 100, nil, "bogus")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)

	resp, err = svc.List(ctx, 0, 100, nil, "draft")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestEstimateDeleteNonexistent(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEstimateLineItemWeeklyHoursSumToTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)
	phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "Build"})
	require.NoError(t, err)

	rate := decimal.NewFromInt(120)
	item, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{
		HourlyRate: &rate,
		WeeklyHours: []domain.WeeklyHoursDTO{
			{WeekStartDate: "2026-03-02", Hours: decimal.NewFromInt(16)},
			{WeekStartDate: "2026-03-16", Hours: decimal.NewFromInt(24)},
		},
	})
	require.NoError(t, err)
	assert.True(t, item.TotalHours.Equal(decimal.NewFromInt(40)), item.TotalHours.String())

	// Replacing the distribution recomputes the total
	updated, err := svc.UpdateLineItem(ctx, item.ID, &domain.UpdateEstimateLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{{WeekStartDate: "2026-03-02", Hours: decimal.NewFromInt(8)}},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalHours.Equal(decimal.NewFromInt(8)), updated.TotalHours.String())
}

func TestEstimateWeeklyHoursKeyedByWeekStartDate(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newEstimateService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateEstimateRequest{Name: "Baseline"})
	require.NoError(t, err)
	phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateEstimatePhaseRequest{Name: "Build"})
	require.NoError(t, err)

	// Two entries for the same week on one line item collide
	_, err = svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{
			{WeekStartDate: "2026-03-02", Hours: decimal.NewFromInt(16)},
			{WeekStartDate: "2026-03-02", Hours: decimal.NewFromInt(24)},
		},
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{{WeekStartDate: "not-a-date", Hours: decimal.NewFromInt(8)}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// Distinct weeks round-trip in calendar order
	item, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateEstimateLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{
			{WeekStartDate: "2026-03-09", Hours: decimal.NewFromInt(24)},
			{WeekStartDate: "2026-03-02", Hours: decimal.NewFromInt(16)},
		},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, got.Phases, 1)
	require.Len(t, got.Phases[0].LineItems, 1)
	weekly := got.Phases[0].LineItems[0].WeeklyHours
	require.Len(t, weekly, 2)
	assert.Equal(t, "2026-03-02", weekly[0].WeekStartDate)
	assert.Equal(t, "2026-03-09", weekly[1].WeekStartDate)
	assert.Equal(t, item.ID, got.Phases[0].LineItems[0].ID)
}

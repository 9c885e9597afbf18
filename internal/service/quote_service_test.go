package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
)

func newQuoteService(f *fixtures) *service.QuoteService {
	return service.NewQuoteService(
		repository.NewQuoteRepository(f.db),
		repository.NewEstimateRepository(f.db),
		repository.NewOpportunityRepository(f.db),
		repository.NewOpportunityLockRepository(f.db),
		config.QuoteConfig{AccountNameMaxLength: 12, OpportunityNameMaxLength: 15},
		zap.NewNop(),
	)
}

func TestQuoteCreateDisplayName(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme Corp!")
	opp := f.createOpportunity(t, ctx, account, "Q1 2025 Renewal")

	quoteDate := "2025-02-11"
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{QuoteDate: &quoteDate})
	require.NoError(t, err)

	assert.Equal(t, 1, dto.Version)
	assert.Equal(t, domain.QuoteStatusDraft, dto.Status)
	assert.Equal(t, domain.QuoteApprovalPending, dto.ApprovalStatus)
	assert.True(t, strings.HasPrefix(dto.DisplayName, "QT-AcmeCorp-Q12025Renewal-02112025-"), dto.DisplayName)
	assert.True(t, strings.HasSuffix(dto.DisplayName, "-v1"), dto.DisplayName)

	// The suffix is the first four hex chars of the quote id
	hex := strings.ReplaceAll(dto.ID.String(), "-", "")
	assert.Contains(t, dto.DisplayName, "-"+hex[:4]+"-")
}

func TestQuoteCreateVersionsIncrement(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	first, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)
}

func TestQuoteCreateCopiesEstimateStructure(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)
	estimateRepo := repository.NewEstimateRepository(f.db)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	estimate := f.createEstimate(t, ctx, opp, "Baseline")

	phase := &domain.EstimatePhase{EstimateID: estimate.ID, Name: "Discovery", DurationWks: 2}
	require.NoError(t, estimateRepo.CreatePhase(ctx, phase))
	item := &domain.EstimateLineItem{
		PhaseID:    phase.ID,
		HourlyRate: decimal.NewFromInt(150),
		TotalHours: decimal.NewFromInt(80),
		WeeklyHours: []domain.EstimateWeeklyHours{
			{WeekStartDate: date(t, "2026-03-02"), Hours: decimal.NewFromInt(40)},
			{WeekStartDate: date(t, "2026-03-09"), Hours: decimal.NewFromInt(40)},
		},
	}
	require.NoError(t, estimateRepo.CreateLineItem(ctx, item))

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{SourceEstimateID: &estimate.ID})
	require.NoError(t, err)

	require.Len(t, dto.Phases, 1)
	assert.Equal(t, "Discovery", dto.Phases[0].Name)
	require.Len(t, dto.Phases[0].LineItems, 1)
	assert.True(t, dto.Phases[0].LineItems[0].TotalHours.Equal(decimal.NewFromInt(80)))
	assert.Len(t, dto.Phases[0].LineItems[0].WeeklyHours, 2)
}

func TestQuoteCreateRejectsForeignEstimate(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	other := f.createOpportunity(t, ctx, account, "Other Deal")
	estimate := f.createEstimate(t, ctx, other, "Foreign")

	_, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{SourceEstimateID: &estimate.ID})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestQuoteUpdateRecomputesDisplayNameOnDateChange(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	assert.Contains(t, dto.DisplayName, "-00000000-")

	newDate := "2025-03-01"
	updated, err := svc.Update(ctx, dto.ID, &domain.UpdateQuoteRequest{QuoteDate: &newDate})
	require.NoError(t, err)
	assert.Contains(t, updated.DisplayName, "-03012025-")
}

func TestQuoteSingleActivePerOpportunity(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	first, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	_, err = svc.Activate(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Activate(ctx, second.ID)
	assert.ErrorIs(t, err, service.ErrConflict)

	// Deactivating the first frees the slot
	_, err = svc.Deactivate(ctx, first.ID)
	require.NoError(t, err)
	_, err = svc.Activate(ctx, second.ID)
	assert.NoError(t, err)
}

func TestQuoteActivateRequiresDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	_, err = svc.Activate(ctx, dto.ID)
	require.NoError(t, err)
	_, err = svc.Deactivate(ctx, dto.ID)
	require.NoError(t, err)

	// Inactive quotes stay inactive
	_, err = svc.Activate(ctx, dto.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestQuoteDeleteActiveRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	_, err = svc.Activate(ctx, dto.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, dto.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = svc.Deactivate(ctx, dto.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, dto.ID))
}

func TestQuoteDeleteNonexistent(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQuoteApprovalIsFinal(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	approved, err := svc.UpdateApproval(ctx, dto.ID, &domain.UpdateQuoteApprovalRequest{ApprovalStatus: domain.QuoteApprovalApproved})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteApprovalApproved, approved.ApprovalStatus)

	_, err = svc.UpdateApproval(ctx, dto.ID, &domain.UpdateQuoteApprovalRequest{ApprovalStatus: domain.QuoteApprovalRejected})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestQuoteMutationsRejectedWhenOpportunityLocked(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)
	lockRepo := repository.NewOpportunityLockRepository(f.db)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	require.NoError(t, lockRepo.Ensure(ctx, opp.ID, nil))

	_, err = svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	notes := "changed"
	_, err = svc.Update(ctx, dto.ID, &domain.UpdateQuoteRequest{Notes: &notes})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	_, err = svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "Phase"})
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	err = svc.Delete(ctx, dto.ID)
	assert.ErrorIs(t, err, service.ErrOpportunityLocked)

	// Reads still work
	_, err = svc.GetByID(ctx, dto.ID)
	assert.NoError(t, err)
}

func TestQuoteListInvalidStatusYieldsEmptyResult(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	_, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	resp, err := svc.List(ctx, 0, 100, nil, "nonsense")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)
}

func TestQuotePhaseRowOrderNeverRenumbered(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)

	p1, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "One"})
	require.NoError(t, err)
	p2, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "Two"})
	require.NoError(t, err)
	p3, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "Three"})
	require.NoError(t, err)

	assert.Less(t, p1.RowOrder, p2.RowOrder)
	assert.Less(t, p2.RowOrder, p3.RowOrder)

	// Deleting the middle phase leaves the others' order untouched
	require.NoError(t, svc.DeletePhase(ctx, p2.ID))
	p4, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "Four"})
	require.NoError(t, err)
	assert.Greater(t, p4.RowOrder, p3.RowOrder)

	reloaded, err := svc.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Phases, 3)
	assert.Equal(t, p1.RowOrder, reloaded.Phases[0].RowOrder)
	assert.Equal(t, p3.RowOrder, reloaded.Phases[1].RowOrder)
}

func TestQuoteLineItemTotalsFromWeeklyHours(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newQuoteService(f)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	dto, err := svc.Create(ctx, opp.ID, &domain.CreateQuoteRequest{})
	require.NoError(t, err)
	phase, err := svc.CreatePhase(ctx, dto.ID, &domain.CreateQuotePhaseRequest{Name: "Build"})
	require.NoError(t, err)

	rate := decimal.NewFromInt(175)
	item, err := svc.CreateLineItem(ctx, phase.ID, &domain.CreateQuoteLineItemRequest{
		HourlyRate: &rate,
		WeeklyHours: []domain.WeeklyHoursDTO{
			{WeekStartDate: "2026-04-06", Hours: decimal.NewFromInt(30)},
			{WeekStartDate: "2026-04-13", Hours: decimal.NewFromFloat(10.5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, item.TotalHours.Equal(decimal.NewFromFloat(40.5)), item.TotalHours.String())

	// Malformed week start date is rejected
	_, err = svc.CreateLineItem(ctx, phase.ID, &domain.CreateQuoteLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{{WeekStartDate: "04/06/2026", Hours: decimal.NewFromInt(8)}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// Two entries for the same week on one line item collide
	_, err = svc.CreateLineItem(ctx, phase.ID, &domain.CreateQuoteLineItemRequest{
		WeeklyHours: []domain.WeeklyHoursDTO{
			{WeekStartDate: "2026-04-06", Hours: decimal.NewFromInt(10)},
			{WeekStartDate: "2026-04-06", Hours: decimal.NewFromInt(12)},
		},
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

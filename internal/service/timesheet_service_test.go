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

func newTimesheetService(f *fixtures) *service.TimesheetService {
	return service.NewTimesheetService(
		repository.NewTimesheetRepository(f.db),
		repository.NewEmployeeRepository(f.db),
		repository.NewOpportunityRepository(f.db),
		repository.NewOpportunityLockRepository(f.db),
		zap.NewNop(),
	)
}

func TestTimesheetCreateUniquePerEmployeeWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts1@example.com")

	dto, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetStatusDraft, dto.Status)
	assert.Equal(t, "2025-03-03", dto.WeekStartDate)

	_, err = svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	assert.ErrorIs(t, err, service.ErrConflict)

	// A different week is fine
	_, err = svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-10"})
	assert.NoError(t, err)
}

func TestTimesheetEntryWithHoursLocksOpportunity(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)
	lockRepo := repository.NewOpportunityLockRepository(f.db)

	emp := f.createEmployee(t, ctx, "ts2@example.com")
	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)

	// Zero hours must not trigger the lock
	_, err = svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-03",
		Hours:         decimal.Zero,
	})
	require.NoError(t, err)
	locked, err := lockRepo.Exists(ctx, opp.ID)
	require.NoError(t, err)
	assert.False(t, locked)

	// The first nonzero entry locks permanently
	entry, err := svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-04",
		Hours:         decimal.NewFromFloat(7.5),
	})
	require.NoError(t, err)
	locked, err = lockRepo.Exists(ctx, opp.ID)
	require.NoError(t, err)
	assert.True(t, locked)

	lock, err := lockRepo.Get(ctx, opp.ID)
	require.NoError(t, err)
	require.NotNil(t, lock.TriggeredByEntryID)
	assert.Equal(t, entry.ID, *lock.TriggeredByEntryID)

	// Deleting the triggering entry does not lift the lock
	require.NoError(t, svc.DeleteEntry(ctx, entry.ID))
	locked, err = lockRepo.Exists(ctx, opp.ID)
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestOpportunityLockEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	lockRepo := repository.NewOpportunityLockRepository(f.db)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	entryID := uuid.New()
	require.NoError(t, lockRepo.Ensure(ctx, opp.ID, &entryID))

	first, err := lockRepo.Get(ctx, opp.ID)
	require.NoError(t, err)

	// A second call must not error or replace the original lock row
	otherEntry := uuid.New()
	require.NoError(t, lockRepo.Ensure(ctx, opp.ID, &otherEntry))

	second, err := lockRepo.Get(ctx, opp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.TriggeredByEntryID)
	assert.Equal(t, entryID, *second.TriggeredByEntryID)
}

func TestTimesheetLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts3@example.com")
	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)

	// Draft cannot be approved or rejected directly
	_, err = svc.Approve(ctx, ts.ID, &domain.DecideTimesheetRequest{})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	submitted, err := svc.Submit(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetStatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	// Submitted cannot be submitted again
	_, err = svc.Submit(ctx, ts.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	rejected, err := svc.Reject(ctx, ts.ID, &domain.DecideTimesheetRequest{Comment: "missing entries"})
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetStatusRejected, rejected.Status)

	// A rejected timesheet can be resubmitted
	resubmitted, err := svc.Submit(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetStatusSubmitted, resubmitted.Status)

	approved, err := svc.Approve(ctx, ts.ID, &domain.DecideTimesheetRequest{Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetStatusApproved, approved.Status)
	assert.NotNil(t, approved.DecidedAt)

	// Every transition left a history row
	assert.Len(t, approved.StatusHistory, 4)
}

func TestApprovedTimesheetIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts4@example.com")
	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)
	entry, err := svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-03",
		Hours:         decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, ts.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, ts.ID, &domain.DecideTimesheetRequest{})
	require.NoError(t, err)

	_, err = svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-04",
		Hours:         decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, service.ErrTimesheetImmutable)

	hours := decimal.NewFromInt(2)
	_, err = svc.UpdateEntry(ctx, entry.ID, &domain.UpdateTimesheetEntryRequest{Hours: &hours})
	assert.ErrorIs(t, err, service.ErrTimesheetImmutable)

	err = svc.DeleteEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, service.ErrTimesheetImmutable)

	err = svc.Delete(ctx, ts.ID)
	assert.ErrorIs(t, err, service.ErrTimesheetImmutable)
}

func TestTimesheetApprovalSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts5@example.com")
	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-03",
		Hours:         decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	// No snapshot before approval
	_, err = svc.GetSnapshot(ctx, ts.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Submit(ctx, ts.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, ts.ID, &domain.DecideTimesheetRequest{})
	require.NoError(t, err)

	snapshot, err := svc.GetSnapshot(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, ts.ID, snapshot.ID)
	assert.Equal(t, domain.TimesheetStatusApproved, snapshot.Status)
	require.Len(t, snapshot.Entries, 1)
	assert.True(t, snapshot.Entries[0].Hours.Equal(decimal.NewFromInt(8)))
}

func TestTimesheetEntryRowOrderNeverRenumbered(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts6@example.com")
	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)

	var entries []*domain.TimesheetEntryDTO
	for _, day := range []string{"2025-03-03", "2025-03-04", "2025-03-05"} {
		e, err := svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
			OpportunityID: opp.ID,
			EntryDate:     day,
			Hours:         decimal.Zero,
		})
		require.NoError(t, err)
		entries = append(entries, e)
	}
	assert.Less(t, entries[0].RowOrder, entries[1].RowOrder)
	assert.Less(t, entries[1].RowOrder, entries[2].RowOrder)

	require.NoError(t, svc.DeleteEntry(ctx, entries[1].ID))

	remaining, err := svc.ListEntries(ctx, ts.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, entries[0].RowOrder, remaining[0].RowOrder)
	assert.Equal(t, entries[2].RowOrder, remaining[1].RowOrder)
}

func TestTimesheetListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts7@example.com")
	_, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)

	resp, err := svc.List(ctx, 0, 100, nil, "not-a-status", "")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)

	resp, err = svc.List(ctx, 0, 100, &emp.ID, "draft", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	_, err = svc.List(ctx, 0, 100, nil, "", "not-a-date")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTimesheetEntryNegativeHoursRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newTimesheetService(f)

	emp := f.createEmployee(t, ctx, "ts8@example.com")
	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")

	ts, err := svc.Create(ctx, &domain.CreateTimesheetRequest{EmployeeID: emp.ID, WeekStartDate: "2025-03-03"})
	require.NoError(t, err)

	_, err = svc.CreateEntry(ctx, ts.ID, &domain.CreateTimesheetEntryRequest{
		OpportunityID: opp.ID,
		EntryDate:     "2025-03-03",
		Hours:         decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
)

func newBillingTermService(f *fixtures) *service.BillingTermService {
	return service.NewBillingTermService(
		repository.NewBillingTermRepository(f.db),
		repository.NewAccountRepository(f.db),
		zap.NewNop(),
	)
}

func TestBillingTermCodeIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newBillingTermService(f)

	term, err := svc.Create(ctx, &domain.CreateBillingTermRequest{
		Code:         "NET30",
		Description:  "Net 30 days",
		DaysUntilDue: 30,
	})
	require.NoError(t, err)
	assert.True(t, term.IsActive)

	_, err = svc.Create(ctx, &domain.CreateBillingTermRequest{
		Code:         "NET30",
		Description:  "duplicate",
		DaysUntilDue: 30,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestBillingTermDeleteBlockedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newBillingTermService(f)

	term, err := svc.Create(ctx, &domain.CreateBillingTermRequest{
		Code:         "NET45",
		Description:  "Net 45 days",
		DaysUntilDue: 45,
	})
	require.NoError(t, err)

	account := &domain.Account{
		CompanyName:   "Acme Corp",
		Type:          domain.AccountTypeCustomer,
		BillingTermID: &term.ID,
		IsActive:      true,
	}
	require.NoError(t, f.db.WithContext(ctx).Create(account).Error)

	err = svc.Delete(ctx, term.ID)
	assert.ErrorIs(t, err, service.ErrBillingTermInUse)

	// Once the reference is gone the term can be removed
	require.NoError(t, f.db.WithContext(ctx).
		Model(account).Update("billing_term_id", nil).Error)
	require.NoError(t, svc.Delete(ctx, term.ID))

	_, err = svc.GetByID(ctx, term.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBillingTermDeleteNonexistent(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newBillingTermService(f)

	err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBillingTermListActiveOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newBillingTermService(f)

	active, err := svc.Create(ctx, &domain.CreateBillingTermRequest{Code: "NET15", DaysUntilDue: 15})
	require.NoError(t, err)
	retired, err := svc.Create(ctx, &domain.CreateBillingTermRequest{Code: "NET60", DaysUntilDue: 60})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, retired.ID, &domain.UpdateBillingTermRequest{IsActive: &inactive})
	require.NoError(t, err)

	resp, err := svc.List(ctx, 0, 100, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, active.ID, resp.Items[0].ID)

	resp, err = svc.List(ctx, 0, 100, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
}

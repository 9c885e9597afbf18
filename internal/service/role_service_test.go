package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/repository"
	"github.com/meridiancg/backoffice-api/internal/service"
)

func newRoleService(f *fixtures) *service.RoleService {
	return service.NewRoleService(
		repository.NewRoleRepository(f.db),
		repository.NewDeliveryCenterRepository(f.db),
		zap.NewNop(),
	)
}

func (f *fixtures) createDeliveryCenter(t *testing.T, ctx context.Context, code string) *domain.DeliveryCenter {
	t.Helper()
	dc := &domain.DeliveryCenter{
		Name:            "Center " + code,
		Code:            code,
		DefaultCurrency: "USD",
		IsActive:        true,
	}
	require.NoError(t, f.db.WithContext(ctx).Create(dc).Error)
	return dc
}

func TestRoleRateScopeIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newRoleService(f)

	role, err := svc.Create(ctx, &domain.CreateRoleRequest{Name: "Senior Consultant"})
	require.NoError(t, err)
	dc := f.createDeliveryCenter(t, ctx, "EMEA")

	_, err = svc.CreateRate(ctx, role.ID, &domain.CreateRoleRateRequest{
		DeliveryCenterID: dc.ID,
		Currency:         "EUR",
		HourlyRate:       decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	// Same role, center, and currency again
	_, err = svc.CreateRate(ctx, role.ID, &domain.CreateRoleRateRequest{
		DeliveryCenterID: dc.ID,
		Currency:         "EUR",
		HourlyRate:       decimal.NewFromInt(175),
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	// A different currency in the same center is a new scope
	_, err = svc.CreateRate(ctx, role.ID, &domain.CreateRoleRateRequest{
		DeliveryCenterID: dc.ID,
		Currency:         "USD",
		HourlyRate:       decimal.NewFromInt(160),
	})
	assert.NoError(t, err)
}

func TestRoleDeleteBlockedByLineItemReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newRoleService(f)

	role, err := svc.Create(ctx, &domain.CreateRoleRequest{Name: "Architect"})
	require.NoError(t, err)

	account := f.createAccount(t, ctx, "Acme")
	opp := f.createOpportunity(t, ctx, account, "Renewal")
	estimate := f.createEstimate(t, ctx, opp, "Initial Estimate")

	phase := &domain.EstimatePhase{EstimateID: estimate.ID, Name: "Build"}
	require.NoError(t, f.db.WithContext(ctx).Create(phase).Error)
	item := &domain.EstimateLineItem{
		PhaseID:    phase.ID,
		RoleID:     &role.ID,
		HourlyRate: decimal.NewFromInt(150),
	}
	require.NoError(t, f.db.WithContext(ctx).Create(item).Error)

	err = svc.Delete(ctx, role.ID)
	assert.ErrorIs(t, err, service.ErrRoleInUse)

	// With the reference gone the role can be deleted, cascading its rates
	require.NoError(t, f.db.WithContext(ctx).Delete(item).Error)
	require.NoError(t, svc.Delete(ctx, role.ID))

	_, err = svc.GetByID(ctx, role.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRoleNameIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixtures(t)
	svc := newRoleService(f)

	_, err := svc.Create(ctx, &domain.CreateRoleRequest{Name: "Developer"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateRoleRequest{Name: "Developer"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

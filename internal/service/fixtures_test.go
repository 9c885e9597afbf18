package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
	"github.com/meridiancg/backoffice-api/internal/testutil"
)

type fixtures struct {
	db *gorm.DB
}

func newFixtures(t *testing.T) *fixtures {
	return &fixtures{db: testutil.NewTestDB(t)}
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func (f *fixtures) createAccount(t *testing.T, ctx context.Context, name string) *domain.Account {
	t.Helper()
	account := &domain.Account{
		CompanyName: name,
		Type:        domain.AccountTypeCustomer,
		IsActive:    true,
	}
	require.NoError(t, f.db.WithContext(ctx).Create(account).Error)
	return account
}

func (f *fixtures) createOpportunity(t *testing.T, ctx context.Context, account *domain.Account, name string) *domain.Opportunity {
	t.Helper()
	opp := &domain.Opportunity{
		AccountID: account.ID,
		Name:      name,
		Stage:     domain.OpportunityStageOpportunity,
		Currency:  "USD",
	}
	require.NoError(t, f.db.WithContext(ctx).Create(opp).Error)
	return opp
}

func (f *fixtures) createEmployee(t *testing.T, ctx context.Context, email string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{
		FirstName:    "Test",
		LastName:     "Employee",
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Status:       domain.EmployeeStatusActive,
	}
	require.NoError(t, f.db.WithContext(ctx).Create(emp).Error)
	return emp
}

func (f *fixtures) createEstimate(t *testing.T, ctx context.Context, opp *domain.Opportunity, name string) *domain.Estimate {
	t.Helper()
	estimate := &domain.Estimate{
		OpportunityID: opp.ID,
		Name:          name,
		Status:        domain.EstimateStatusDraft,
		Currency:      "USD",
	}
	require.NoError(t, f.db.WithContext(ctx).Create(estimate).Error)
	return estimate
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type OpportunityLockRepository struct {
	db *gorm.DB
}

func NewOpportunityLockRepository(db *gorm.DB) *OpportunityLockRepository {
	return &OpportunityLockRepository{db: db}
}

// Ensure creates the lock row for the opportunity if it does not already
// exist. Idempotent: a second call is a no-op, not an error. The unique
// index on opportunity_id backs the ON CONFLICT clause.
func (r *OpportunityLockRepository) Ensure(ctx context.Context, opportunityID uuid.UUID, triggeredByEntryID *uuid.UUID) error {
	lock := domain.OpportunityPermanentLock{
		OpportunityID:      opportunityID,
		TriggeredByEntryID: triggeredByEntryID,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "opportunity_id"}},
		DoNothing: true,
	}).Create(&lock).Error
}

// Exists reports whether the opportunity carries a permanent lock
func (r *OpportunityLockRepository) Exists(ctx context.Context, opportunityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.OpportunityPermanentLock{}).
		Where("opportunity_id = ?", opportunityID).
		Count(&count).Error
	return count > 0, err
}

func (r *OpportunityLockRepository) Get(ctx context.Context, opportunityID uuid.UUID) (*domain.OpportunityPermanentLock, error) {
	var lock domain.OpportunityPermanentLock
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ?", opportunityID).
		First(&lock).Error
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

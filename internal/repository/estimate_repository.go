package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) Create(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Create(estimate).Error
}

func (r *EstimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	err := r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_phases.row_order ASC")
		}).
		Preload("Phases.LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_line_items.row_order ASC")
		}).
		Preload("Phases.LineItems.Role").
		Preload("Phases.LineItems.WeeklyHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_weekly_hours.week_start_date ASC")
		}).
		Where("id = ?", id).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (r *EstimateRepository) Update(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Save(estimate).Error
}

func (r *EstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Estimate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EstimateRepository) List(ctx context.Context, skip, limit int, opportunityID *uuid.UUID, status *domain.EstimateStatus) ([]domain.Estimate, int64, error) {
	var estimates []domain.Estimate
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Estimate{})

	if opportunityID != nil {
		query = query.Where("opportunity_id = ?", *opportunityID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).Order("created_at DESC").Find(&estimates).Error
	return estimates, total, err
}

// Phases

// CreatePhase appends a phase to the estimate. The row order is claimed
// and the row inserted in one transaction.
func (r *EstimateRepository) CreatePhase(ctx context.Context, phase *domain.EstimatePhase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.EstimatePhase{}, "estimate_id", phase.EstimateID)
		if err != nil {
			return err
		}
		phase.RowOrder = order
		return tx.Create(phase).Error
	})
}

func (r *EstimateRepository) GetPhaseByID(ctx context.Context, id uuid.UUID) (*domain.EstimatePhase, error) {
	var phase domain.EstimatePhase
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_line_items.row_order ASC")
		}).
		Preload("LineItems.WeeklyHours").
		Where("id = ?", id).
		First(&phase).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

func (r *EstimateRepository) UpdatePhase(ctx context.Context, phase *domain.EstimatePhase) error {
	return r.db.WithContext(ctx).Save(phase).Error
}

// DeletePhase removes the phase. Remaining siblings keep their row_order
// values untouched.
func (r *EstimateRepository) DeletePhase(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.EstimatePhase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EstimateRepository) ListPhases(ctx context.Context, estimateID uuid.UUID) ([]domain.EstimatePhase, error) {
	var phases []domain.EstimatePhase
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("row_order ASC").
		Find(&phases).Error
	return phases, err
}

// Line items

// CreateLineItem appends a line item to the phase, claiming its row order
// in the same transaction as the insert
func (r *EstimateRepository) CreateLineItem(ctx context.Context, item *domain.EstimateLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.EstimateLineItem{}, "phase_id", item.PhaseID)
		if err != nil {
			return err
		}
		item.RowOrder = order
		return tx.Create(item).Error
	})
}

func (r *EstimateRepository) GetLineItemByID(ctx context.Context, id uuid.UUID) (*domain.EstimateLineItem, error) {
	var item domain.EstimateLineItem
	err := r.db.WithContext(ctx).
		Preload("WeeklyHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_weekly_hours.week_start_date ASC")
		}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateLineItem saves the item and replaces its weekly hour distribution
// when one is supplied
func (r *EstimateRepository) UpdateLineItem(ctx context.Context, item *domain.EstimateLineItem, replaceWeekly bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceWeekly {
			if err := tx.Where("line_item_id = ?", item.ID).Delete(&domain.EstimateWeeklyHours{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: replaceWeekly}).Save(item).Error
	})
}

func (r *EstimateRepository) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.EstimateLineItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EstimateRepository) ListLineItems(ctx context.Context, phaseID uuid.UUID) ([]domain.EstimateLineItem, error) {
	var items []domain.EstimateLineItem
	err := r.db.WithContext(ctx).
		Preload("WeeklyHours").
		Where("phase_id = ?", phaseID).
		Order("row_order ASC").
		Find(&items).Error
	return items, err
}

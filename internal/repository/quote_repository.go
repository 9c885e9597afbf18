package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_phases.row_order ASC")
		}).
		Preload("Phases.LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_line_items.row_order ASC")
		}).
		Preload("Phases.LineItems.Role").
		Preload("Phases.LineItems.WeeklyHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_weekly_hours.week_start_date ASC")
		}).
		Preload("PaymentTriggers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_payment_triggers.row_order ASC")
		}).
		Preload("VariableComps", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_variable_compensations.row_order ASC")
		}).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Quote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuoteRepository) List(ctx context.Context, skip, limit int, opportunityID *uuid.UUID, status *domain.QuoteStatus) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quote{})

	if opportunityID != nil {
		query = query.Where("opportunity_id = ?", *opportunityID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).Order("version DESC, created_at DESC").Find(&quotes).Error
	return quotes, total, err
}

// NextVersion returns max(version)+1 across the opportunity's quotes,
// starting at 1 for the first quote
func (r *QuoteRepository) NextVersion(ctx context.Context, opportunityID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("opportunity_id = ?", opportunityID).
		Select("COALESCE(MAX(version), 0) + 1").
		Scan(&next).Error
	return next, err
}

// GetActiveByOpportunity returns the currently active quote, if any
func (r *QuoteRepository) GetActiveByOpportunity(ctx context.Context, opportunityID uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where("opportunity_id = ? AND status = ?", opportunityID, domain.QuoteStatusActive).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Phases

func (r *QuoteRepository) CreatePhase(ctx context.Context, phase *domain.QuotePhase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.QuotePhase{}, "quote_id", phase.QuoteID)
		if err != nil {
			return err
		}
		phase.RowOrder = order
		return tx.Create(phase).Error
	})
}

func (r *QuoteRepository) GetPhaseByID(ctx context.Context, id uuid.UUID) (*domain.QuotePhase, error) {
	var phase domain.QuotePhase
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_line_items.row_order ASC")
		}).
		Preload("LineItems.WeeklyHours").
		Where("id = ?", id).
		First(&phase).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

func (r *QuoteRepository) UpdatePhase(ctx context.Context, phase *domain.QuotePhase) error {
	return r.db.WithContext(ctx).Save(phase).Error
}

func (r *QuoteRepository) DeletePhase(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.QuotePhase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuoteRepository) ListPhases(ctx context.Context, quoteID uuid.UUID) ([]domain.QuotePhase, error) {
	var phases []domain.QuotePhase
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("row_order ASC").
		Find(&phases).Error
	return phases, err
}

// Line items

func (r *QuoteRepository) CreateLineItem(ctx context.Context, item *domain.QuoteLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.QuoteLineItem{}, "phase_id", item.PhaseID)
		if err != nil {
			return err
		}
		item.RowOrder = order
		return tx.Create(item).Error
	})
}

func (r *QuoteRepository) GetLineItemByID(ctx context.Context, id uuid.UUID) (*domain.QuoteLineItem, error) {
	var item domain.QuoteLineItem
	err := r.db.WithContext(ctx).
		Preload("WeeklyHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("quote_weekly_hours.week_start_date ASC")
		}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QuoteRepository) UpdateLineItem(ctx context.Context, item *domain.QuoteLineItem, replaceWeekly bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceWeekly {
			if err := tx.Where("line_item_id = ?", item.ID).Delete(&domain.QuoteWeeklyHours{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: replaceWeekly}).Save(item).Error
	})
}

func (r *QuoteRepository) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.QuoteLineItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Payment triggers

func (r *QuoteRepository) CreatePaymentTrigger(ctx context.Context, trigger *domain.QuotePaymentTrigger) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.QuotePaymentTrigger{}, "quote_id", trigger.QuoteID)
		if err != nil {
			return err
		}
		trigger.RowOrder = order
		return tx.Create(trigger).Error
	})
}

func (r *QuoteRepository) GetPaymentTriggerByID(ctx context.Context, id uuid.UUID) (*domain.QuotePaymentTrigger, error) {
	var trigger domain.QuotePaymentTrigger
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trigger).Error
	if err != nil {
		return nil, err
	}
	return &trigger, nil
}

func (r *QuoteRepository) UpdatePaymentTrigger(ctx context.Context, trigger *domain.QuotePaymentTrigger) error {
	return r.db.WithContext(ctx).Save(trigger).Error
}

func (r *QuoteRepository) DeletePaymentTrigger(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.QuotePaymentTrigger{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Variable compensation

func (r *QuoteRepository) CreateVariableCompensation(ctx context.Context, comp *domain.QuoteVariableCompensation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextRowOrder(tx, &domain.QuoteVariableCompensation{}, "quote_id", comp.QuoteID)
		if err != nil {
			return err
		}
		comp.RowOrder = order
		return tx.Create(comp).Error
	})
}

func (r *QuoteRepository) GetVariableCompensationByID(ctx context.Context, id uuid.UUID) (*domain.QuoteVariableCompensation, error) {
	var comp domain.QuoteVariableCompensation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comp).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *QuoteRepository) UpdateVariableCompensation(ctx context.Context, comp *domain.QuoteVariableCompensation) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

func (r *QuoteRepository) DeleteVariableCompensation(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.QuoteVariableCompensation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

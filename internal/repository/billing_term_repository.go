package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type BillingTermRepository struct {
	db *gorm.DB
}

func NewBillingTermRepository(db *gorm.DB) *BillingTermRepository {
	return &BillingTermRepository{db: db}
}

func (r *BillingTermRepository) Create(ctx context.Context, term *domain.BillingTerm) error {
	return r.db.WithContext(ctx).Create(term).Error
}

func (r *BillingTermRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BillingTerm, error) {
	var term domain.BillingTerm
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *BillingTermRepository) GetByCode(ctx context.Context, code string) (*domain.BillingTerm, error) {
	var term domain.BillingTerm
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *BillingTermRepository) Update(ctx context.Context, term *domain.BillingTerm) error {
	return r.db.WithContext(ctx).Save(term).Error
}

func (r *BillingTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.BillingTerm{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BillingTermRepository) List(ctx context.Context, skip, limit int, activeOnly bool) ([]domain.BillingTerm, int64, error) {
	var terms []domain.BillingTerm
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.BillingTerm{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).Order("sort_order ASC, code ASC").Find(&terms).Error
	return terms, total, err
}

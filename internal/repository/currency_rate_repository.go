package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type CurrencyRateRepository struct {
	db *gorm.DB
}

func NewCurrencyRateRepository(db *gorm.DB) *CurrencyRateRepository {
	return &CurrencyRateRepository{db: db}
}

func (r *CurrencyRateRepository) Create(ctx context.Context, rate *domain.CurrencyRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

// Upsert inserts the rate or, when one exists for the same currency pair
// and effective date, overwrites its value and source. Used by the
// warehouse sync so reruns are safe.
func (r *CurrencyRateRepository) Upsert(ctx context.Context, rate *domain.CurrencyRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "from_currency"},
			{Name: "to_currency"},
			{Name: "effective_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "source", "updated_at"}),
	}).Create(rate).Error
}

func (r *CurrencyRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyRate, error) {
	var rate domain.CurrencyRate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// GetLatest returns the most recent rate for a currency pair effective on
// or before the given date
func (r *CurrencyRateRepository) GetLatest(ctx context.Context, from, to string, asOf time.Time) (*domain.CurrencyRate, error) {
	var rate domain.CurrencyRate
	err := r.db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ? AND effective_date <= ?", from, to, asOf).
		Order("effective_date DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *CurrencyRateRepository) Update(ctx context.Context, rate *domain.CurrencyRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *CurrencyRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.CurrencyRate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CurrencyRateRepository) List(ctx context.Context, skip, limit int, from, to string, source *domain.CurrencyRateSource) ([]domain.CurrencyRate, int64, error) {
	var rates []domain.CurrencyRate
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.CurrencyRate{})

	if from != "" {
		query = query.Where("from_currency = ?", from)
	}
	if to != "" {
		query = query.Where("to_currency = ?", to)
	}
	if source != nil {
		query = query.Where("source = ?", *source)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).
		Order("effective_date DESC, from_currency ASC, to_currency ASC").
		Find(&rates).Error
	return rates, total, err
}

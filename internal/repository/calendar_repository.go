package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(ctx context.Context, day *domain.CalendarDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *CalendarRepository) CreateBatch(ctx context.Context, days []domain.CalendarDay) error {
	if len(days) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&days).Error
}

func (r *CalendarRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarDay, error) {
	var day domain.CalendarDay
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *CalendarRepository) GetByDate(ctx context.Context, calendarCode string, date time.Time) (*domain.CalendarDay, error) {
	var day domain.CalendarDay
	err := r.db.WithContext(ctx).
		Where("calendar_code = ? AND date = ?", calendarCode, date).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *CalendarRepository) Update(ctx context.Context, day *domain.CalendarDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

func (r *CalendarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.CalendarDay{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CalendarRepository) List(ctx context.Context, skip, limit int, calendarCode string, from, to *time.Time) ([]domain.CalendarDay, int64, error) {
	var days []domain.CalendarDay
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.CalendarDay{})

	if calendarCode != "" {
		query = query.Where("calendar_code = ?", calendarCode)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).Order("date ASC").Find(&days).Error
	return days, total, err
}

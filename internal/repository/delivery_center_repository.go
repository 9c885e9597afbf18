package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type DeliveryCenterRepository struct {
	db *gorm.DB
}

func NewDeliveryCenterRepository(db *gorm.DB) *DeliveryCenterRepository {
	return &DeliveryCenterRepository{db: db}
}

func (r *DeliveryCenterRepository) Create(ctx context.Context, dc *domain.DeliveryCenter) error {
	return r.db.WithContext(ctx).Create(dc).Error
}

func (r *DeliveryCenterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryCenter, error) {
	var dc domain.DeliveryCenter
	err := r.db.WithContext(ctx).
		Preload("Approvers").
		Preload("Approvers.Employee").
		Where("id = ?", id).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *DeliveryCenterRepository) Update(ctx context.Context, dc *domain.DeliveryCenter) error {
	return r.db.WithContext(ctx).Save(dc).Error
}

func (r *DeliveryCenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.DeliveryCenter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DeliveryCenterRepository) List(ctx context.Context, skip, limit int, activeOnly bool) ([]domain.DeliveryCenter, int64, error) {
	var centers []domain.DeliveryCenter
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.DeliveryCenter{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(skip).Limit(limit).Order("code ASC").Find(&centers).Error
	return centers, total, err
}

// Approvers

func (r *DeliveryCenterRepository) AddApprover(ctx context.Context, approver *domain.DeliveryCenterApprover) error {
	return r.db.WithContext(ctx).Create(approver).Error
}

func (r *DeliveryCenterRepository) RemoveApprover(ctx context.Context, deliveryCenterID, employeeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("delivery_center_id = ? AND employee_id = ?", deliveryCenterID, employeeID).
		Delete(&domain.DeliveryCenterApprover{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DeliveryCenterRepository) ListApprovers(ctx context.Context, deliveryCenterID uuid.UUID) ([]domain.DeliveryCenterApprover, error) {
	var approvers []domain.DeliveryCenterApprover
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("delivery_center_id = ?", deliveryCenterID).
		Find(&approvers).Error
	return approvers, err
}

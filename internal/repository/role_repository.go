package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridiancg/backoffice-api/internal/domain"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Preload("Rates").
		Preload("Rates.DeliveryCenter").
		Where("id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Role{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountLineItemReferences counts estimate and quote line items that point at
// the role, used to block deletes that would orphan priced work
func (r *RoleRepository) CountLineItemReferences(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var estimateRefs, quoteRefs int64

	if err := r.db.WithContext(ctx).Model(&domain.EstimateLineItem{}).
		Where("role_id = ?", roleID).
		Count(&estimateRefs).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.QuoteLineItem{}).
		Where("role_id = ?", roleID).
		Count(&quoteRefs).Error; err != nil {
		return 0, err
	}
	return estimateRefs + quoteRefs, nil
}

func (r *RoleRepository) List(ctx context.Context, skip, limit int, search string) ([]domain.Role, int64, error) {
	var roles []domain.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Role{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Rates").Offset(skip).Limit(limit).Order("name ASC").Find(&roles).Error
	return roles, total, err
}

// Rates

func (r *RoleRepository) CreateRate(ctx context.Context, rate *domain.RoleRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *RoleRepository) GetRateByID(ctx context.Context, id uuid.UUID) (*domain.RoleRate, error) {
	var rate domain.RoleRate
	err := r.db.WithContext(ctx).Preload("DeliveryCenter").Where("id = ?", id).First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *RoleRepository) UpdateRate(ctx context.Context, rate *domain.RoleRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *RoleRepository) DeleteRate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.RoleRate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoleRepository) ListRates(ctx context.Context, roleID uuid.UUID) ([]domain.RoleRate, error) {
	var rates []domain.RoleRate
	err := r.db.WithContext(ctx).
		Preload("DeliveryCenter").
		Where("role_id = ?", roleID).
		Order("currency ASC").
		Find(&rates).Error
	return rates, err
}

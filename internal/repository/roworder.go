package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nextRowOrder returns max(row_order)+1 within a parent scope, which is 0
// for an empty scope. Call inside the same transaction as the insert so
// concurrent appends cannot claim the same slot.
func nextRowOrder(tx *gorm.DB, model interface{}, scopeColumn string, scopeID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(model).
		Where(scopeColumn+" = ?", scopeID).
		Select("COALESCE(MAX(row_order), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstimateStatus represents the editing state of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft EstimateStatus = "draft"
	EstimateStatusFinal EstimateStatus = "final"
)

// IsValid checks if the EstimateStatus is a valid enum value
func (es EstimateStatus) IsValid() bool {
	switch es {
	case EstimateStatusDraft, EstimateStatusFinal:
		return true
	}
	return false
}

// Estimate is a structured effort and cost breakdown for an opportunity.
// Phases hold line items; line items carry weekly hour distributions.
type Estimate struct {
	BaseModel
	OpportunityID uuid.UUID       `gorm:"type:uuid;not null;index;column:opportunity_id"`
	Opportunity   *Opportunity    `gorm:"foreignKey:OpportunityID"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Status        EstimateStatus  `gorm:"type:varchar(50);not null;default:'draft';index"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	StartDate     *time.Time      `gorm:"type:date;column:start_date"`
	Notes         string          `gorm:"type:text"`
	Phases        []EstimatePhase `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

// EstimatePhase groups line items inside an estimate. Phases keep a
// row_order assigned on insert and never renumbered on delete.
type EstimatePhase struct {
	BaseModel
	EstimateID  uuid.UUID          `gorm:"type:uuid;not null;index;column:estimate_id"`
	Estimate    *Estimate          `gorm:"foreignKey:EstimateID"`
	Name        string             `gorm:"type:varchar(200);not null"`
	RowOrder    int                `gorm:"not null;column:row_order"`
	DurationWks int                `gorm:"not null;default:0;column:duration_weeks"`
	LineItems   []EstimateLineItem `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE"`
}

// EstimateLineItem is one role's contribution to a phase, priced at an
// hourly rate. Keeps a row_order within its phase.
type EstimateLineItem struct {
	BaseModel
	PhaseID          uuid.UUID             `gorm:"type:uuid;not null;index;column:phase_id"`
	Phase            *EstimatePhase        `gorm:"foreignKey:PhaseID"`
	RoleID           *uuid.UUID            `gorm:"type:uuid;column:role_id"`
	Role             *Role                 `gorm:"foreignKey:RoleID"`
	DeliveryCenterID *uuid.UUID            `gorm:"type:uuid;column:delivery_center_id"`
	DeliveryCenter   *DeliveryCenter       `gorm:"foreignKey:DeliveryCenterID"`
	Description      string                `gorm:"type:varchar(500)"`
	RowOrder         int                   `gorm:"not null;column:row_order"`
	HourlyRate       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0;column:hourly_rate"`
	TotalHours       decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0;column:total_hours"`
	WeeklyHours      []EstimateWeeklyHours `gorm:"foreignKey:LineItemID;constraint:OnDelete:CASCADE"`
}

// EstimateWeeklyHours distributes a line item's hours over calendar weeks,
// keyed by the week's start date. One row per line item per week.
type EstimateWeeklyHours struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	LineItemID    uuid.UUID       `gorm:"type:uuid;not null;index;column:line_item_id;uniqueIndex:uq_estimate_weekly"`
	WeekStartDate time.Time       `gorm:"type:date;not null;column:week_start_date;uniqueIndex:uq_estimate_weekly"`
	Hours         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// BeforeCreate assigns the primary key application-side
func (w *EstimateWeeklyHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default pluralization
func (EstimateWeeklyHours) TableName() string {
	return "estimate_weekly_hours"
}

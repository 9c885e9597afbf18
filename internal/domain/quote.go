package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusActive   QuoteStatus = "active"
	QuoteStatusInactive QuoteStatus = "inactive"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (qs QuoteStatus) IsValid() bool {
	switch qs {
	case QuoteStatusDraft, QuoteStatusActive, QuoteStatusInactive:
		return true
	}
	return false
}

// QuoteApprovalStatus represents the internal approval decision on a quote
type QuoteApprovalStatus string

const (
	QuoteApprovalPending  QuoteApprovalStatus = "pending"
	QuoteApprovalApproved QuoteApprovalStatus = "approved"
	QuoteApprovalRejected QuoteApprovalStatus = "rejected"
)

// IsValid checks if the QuoteApprovalStatus is a valid enum value
func (qs QuoteApprovalStatus) IsValid() bool {
	switch qs {
	case QuoteApprovalPending, QuoteApprovalApproved, QuoteApprovalRejected:
		return true
	}
	return false
}

// Quote is a versioned commercial offer built from an estimate. At most one
// quote per opportunity is active at a time; activation locks the source
// estimate against edits for as long as the quote stays active.
type Quote struct {
	BaseModel
	OpportunityID    uuid.UUID           `gorm:"type:uuid;not null;index;column:opportunity_id"`
	Opportunity      *Opportunity        `gorm:"foreignKey:OpportunityID"`
	SourceEstimateID *uuid.UUID          `gorm:"type:uuid;index;column:source_estimate_id"`
	SourceEstimate   *Estimate           `gorm:"foreignKey:SourceEstimateID"`
	DisplayName      string              `gorm:"type:varchar(200);not null;column:display_name"`
	Version          int                 `gorm:"not null;default:1"`
	Status           QuoteStatus         `gorm:"type:varchar(50);not null;default:'draft';index"`
	ApprovalStatus   QuoteApprovalStatus `gorm:"type:varchar(50);not null;default:'pending';column:approval_status"`
	Currency         string              `gorm:"type:varchar(3);not null;default:'USD'"`
	QuoteDate        *time.Time          `gorm:"type:date;column:quote_date"`
	ValidUntil       *time.Time          `gorm:"type:date;column:valid_until"`
	DiscountPercent  decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0;column:discount_percent"`
	Notes            string              `gorm:"type:text"`
	Phases           []QuotePhase        `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	PaymentTriggers  []QuotePaymentTrigger `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	VariableComps    []QuoteVariableCompensation `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Documents        []Document          `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuotePhase mirrors an estimate phase on the quote side. Keeps a
// row_order assigned on insert and never renumbered on delete.
type QuotePhase struct {
	BaseModel
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index;column:quote_id"`
	Quote       *Quote          `gorm:"foreignKey:QuoteID"`
	Name        string          `gorm:"type:varchar(200);not null"`
	RowOrder    int             `gorm:"not null;column:row_order"`
	DurationWks int             `gorm:"not null;default:0;column:duration_weeks"`
	LineItems   []QuoteLineItem `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE"`
}

// QuoteLineItem is one priced role line within a quote phase
type QuoteLineItem struct {
	BaseModel
	PhaseID          uuid.UUID          `gorm:"type:uuid;not null;index;column:phase_id"`
	Phase            *QuotePhase        `gorm:"foreignKey:PhaseID"`
	RoleID           *uuid.UUID         `gorm:"type:uuid;column:role_id"`
	Role             *Role              `gorm:"foreignKey:RoleID"`
	DeliveryCenterID *uuid.UUID         `gorm:"type:uuid;column:delivery_center_id"`
	DeliveryCenter   *DeliveryCenter    `gorm:"foreignKey:DeliveryCenterID"`
	Description      string             `gorm:"type:varchar(500)"`
	RowOrder         int                `gorm:"not null;column:row_order"`
	HourlyRate       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0;column:hourly_rate"`
	TotalHours       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0;column:total_hours"`
	WeeklyHours      []QuoteWeeklyHours `gorm:"foreignKey:LineItemID;constraint:OnDelete:CASCADE"`
}

// QuoteWeeklyHours distributes a quote line item's hours over calendar
// weeks, keyed by the week's start date. One row per line item per week.
type QuoteWeeklyHours struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	LineItemID    uuid.UUID       `gorm:"type:uuid;not null;index;column:line_item_id;uniqueIndex:uq_quote_weekly"`
	WeekStartDate time.Time       `gorm:"type:date;not null;column:week_start_date;uniqueIndex:uq_quote_weekly"`
	Hours         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// BeforeCreate assigns the primary key application-side
func (w *QuoteWeeklyHours) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default pluralization
func (QuoteWeeklyHours) TableName() string {
	return "quote_weekly_hours"
}

// QuotePaymentTrigger is a billing milestone on a quote. Keeps a
// row_order assigned on insert and never renumbered on delete.
type QuotePaymentTrigger struct {
	BaseModel
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index;column:quote_id"`
	Quote       *Quote          `gorm:"foreignKey:QuoteID"`
	Description string          `gorm:"type:varchar(500);not null"`
	RowOrder    int             `gorm:"not null;column:row_order"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate     *time.Time      `gorm:"type:date;column:due_date"`
}

// QuoteVariableCompensation is a success-fee or other variable pricing
// component on a quote. Keeps a row_order assigned on insert.
type QuoteVariableCompensation struct {
	BaseModel
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index;column:quote_id"`
	Quote       *Quote          `gorm:"foreignKey:QuoteID"`
	Description string          `gorm:"type:varchar(500);not null"`
	RowOrder    int             `gorm:"not null;column:row_order"`
	Percent     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CapAmount   *decimal.Decimal `gorm:"type:decimal(18,2);column:cap_amount"`
}

// TableName overrides the default pluralization
func (QuoteVariableCompensation) TableName() string {
	return "quote_variable_compensations"
}

// Document is a file attached to a quote, stored in blob storage with only
// its metadata kept relationally
type Document struct {
	BaseModel
	QuoteID      uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	Quote        *Quote    `gorm:"foreignKey:QuoteID"`
	FileName     string    `gorm:"type:varchar(255);not null;column:file_name"`
	ContentType  string    `gorm:"type:varchar(100);not null;column:content_type"`
	SizeBytes    int64     `gorm:"not null;default:0;column:size_bytes"`
	StorageKey   string    `gorm:"type:varchar(500);not null;column:storage_key"`
	UploadedByID *uuid.UUID `gorm:"type:uuid;column:uploaded_by_id"`
	UploadedBy   *Employee `gorm:"foreignKey:UploadedByID"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TimesheetStatus represents the approval state of a weekly timesheet
type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "draft"
	TimesheetStatusSubmitted TimesheetStatus = "submitted"
	TimesheetStatusApproved  TimesheetStatus = "approved"
	TimesheetStatusRejected  TimesheetStatus = "rejected"
)

// IsValid checks if the TimesheetStatus is a valid enum value
func (ts TimesheetStatus) IsValid() bool {
	switch ts {
	case TimesheetStatusDraft, TimesheetStatusSubmitted, TimesheetStatusApproved, TimesheetStatusRejected:
		return true
	}
	return false
}

// Timesheet is one employee's hours for one week. A week is keyed by its
// start date; at most one timesheet exists per employee per week.
type Timesheet struct {
	BaseModel
	EmployeeID    uuid.UUID                `gorm:"type:uuid;not null;column:employee_id;uniqueIndex:uq_timesheet_week"`
	Employee      *Employee                `gorm:"foreignKey:EmployeeID"`
	WeekStartDate time.Time                `gorm:"type:date;not null;column:week_start_date;uniqueIndex:uq_timesheet_week"`
	Status        TimesheetStatus          `gorm:"type:varchar(50);not null;default:'draft';index"`
	SubmittedAt   *time.Time               `gorm:"column:submitted_at"`
	DecidedAt     *time.Time               `gorm:"column:decided_at"`
	DecidedByID   *uuid.UUID               `gorm:"type:uuid;column:decided_by_id"`
	DecidedBy     *Employee                `gorm:"foreignKey:DecidedByID"`
	Entries       []TimesheetEntry         `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
	StatusHistory []TimesheetStatusHistory `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
}

// TimesheetEntry is one line of hours against an opportunity for one day.
// Keeps a row_order within its timesheet, assigned on insert and never
// renumbered on delete. The first entry with nonzero hours permanently
// locks the referenced opportunity's estimates and quotes.
type TimesheetEntry struct {
	BaseModel
	TimesheetID   uuid.UUID       `gorm:"type:uuid;not null;index;column:timesheet_id"`
	Timesheet     *Timesheet      `gorm:"foreignKey:TimesheetID"`
	OpportunityID uuid.UUID       `gorm:"type:uuid;not null;index;column:opportunity_id"`
	Opportunity   *Opportunity    `gorm:"foreignKey:OpportunityID"`
	EntryDate     time.Time       `gorm:"type:date;not null;column:entry_date"`
	Hours         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	RowOrder      int             `gorm:"not null;column:row_order"`
	Note          string          `gorm:"type:varchar(500)"`
}

// TimesheetStatusHistory records every status transition of a timesheet.
// Append-only: rows are never updated or deleted.
type TimesheetStatusHistory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	TimesheetID  uuid.UUID       `gorm:"type:uuid;not null;index;column:timesheet_id"`
	FromStatus   TimesheetStatus `gorm:"type:varchar(50);not null;column:from_status"`
	ToStatus     TimesheetStatus `gorm:"type:varchar(50);not null;column:to_status"`
	ChangedByID  *uuid.UUID      `gorm:"type:uuid;column:changed_by_id"`
	ChangedBy    *Employee       `gorm:"foreignKey:ChangedByID"`
	Comment      string          `gorm:"type:varchar(500)"`
	ChangedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP;column:changed_at"`
}

// BeforeCreate assigns the primary key application-side
func (h *TimesheetStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default pluralization
func (TimesheetStatusHistory) TableName() string {
	return "timesheet_status_history"
}

// TimesheetApprovedSnapshot freezes a timesheet's content at approval time
// as a JSON document. Immutable once written.
type TimesheetApprovedSnapshot struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	TimesheetID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:timesheet_id"`
	Snapshot    string    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key application-side
func (s *TimesheetApprovedSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default pluralization
func (TimesheetApprovedSnapshot) TableName() string {
	return "timesheet_approved_snapshots"
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpportunityStage represents where a deal sits in its lifecycle
type OpportunityStage string

const (
	OpportunityStageOpportunity OpportunityStage = "opportunity"
	OpportunityStageEngagement  OpportunityStage = "engagement"
	OpportunityStageClosed      OpportunityStage = "closed"
)

// IsValid checks if the OpportunityStage is a valid enum value
func (os OpportunityStage) IsValid() bool {
	switch os {
	case OpportunityStageOpportunity, OpportunityStageEngagement, OpportunityStageClosed:
		return true
	}
	return false
}

// Opportunity represents a client deal, from pre-sale pursuit through
// delivery. The same record carries the deal through its engagement stage.
type Opportunity struct {
	BaseModel
	AccountID       uuid.UUID        `gorm:"type:uuid;not null;index;column:account_id"`
	Account         *Account         `gorm:"foreignKey:AccountID"`
	Name            string           `gorm:"type:varchar(200);not null;index"`
	Description     string           `gorm:"type:text"`
	Stage           OpportunityStage `gorm:"type:varchar(50);not null;default:'opportunity';index"`
	OwnerEmployeeID *uuid.UUID       `gorm:"type:uuid;column:owner_employee_id;index"`
	OwnerEmployee   *Employee        `gorm:"foreignKey:OwnerEmployeeID"`
	Currency        string           `gorm:"type:varchar(3);not null;default:'USD'"`
	StartDate       *time.Time       `gorm:"type:date;column:start_date"`
	EndDate         *time.Time       `gorm:"type:date;column:end_date"`
	Releases        []Release        `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE"`
	Estimates       []Estimate       `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE"`
	Quotes          []Quote          `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE"`
}

// ReleaseStatus represents the delivery status of a release
type ReleaseStatus string

const (
	ReleaseStatusPlanned   ReleaseStatus = "planned"
	ReleaseStatusActive    ReleaseStatus = "active"
	ReleaseStatusCompleted ReleaseStatus = "completed"
)

// IsValid checks if the ReleaseStatus is a valid enum value
func (rs ReleaseStatus) IsValid() bool {
	switch rs {
	case ReleaseStatusPlanned, ReleaseStatusActive, ReleaseStatusCompleted:
		return true
	}
	return false
}

// Release is a delivery iteration within an engagement
type Release struct {
	BaseModel
	OpportunityID uuid.UUID     `gorm:"type:uuid;not null;index;column:opportunity_id"`
	Opportunity   *Opportunity  `gorm:"foreignKey:OpportunityID"`
	Name          string        `gorm:"type:varchar(200);not null"`
	Version       int           `gorm:"not null;default:1"`
	Status        ReleaseStatus `gorm:"type:varchar(50);not null;default:'planned'"`
	StartDate     *time.Time    `gorm:"type:date;column:start_date"`
	EndDate       *time.Time    `gorm:"type:date;column:end_date"`
}

// EmployeeEngagement staffs an employee onto an engagement in a role.
// Association row with no lifecycle of its own.
type EmployeeEngagement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key"`
	OpportunityID uuid.UUID    `gorm:"type:uuid;not null;index;column:opportunity_id;uniqueIndex:uq_employee_engagement"`
	Opportunity   *Opportunity `gorm:"foreignKey:OpportunityID"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;not null;column:employee_id;uniqueIndex:uq_employee_engagement"`
	Employee      *Employee    `gorm:"foreignKey:EmployeeID"`
	RoleID        *uuid.UUID   `gorm:"type:uuid;column:role_id"`
	Role          *Role        `gorm:"foreignKey:RoleID"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key application-side
func (e *EmployeeEngagement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EngagementTimesheetApprover marks an employee as a timesheet approver for
// an engagement. Association row with no lifecycle of its own.
type EngagementTimesheetApprover struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key"`
	OpportunityID uuid.UUID    `gorm:"type:uuid;not null;index;column:opportunity_id;uniqueIndex:uq_engagement_approver"`
	Opportunity   *Opportunity `gorm:"foreignKey:OpportunityID"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;not null;column:employee_id;uniqueIndex:uq_engagement_approver"`
	Employee      *Employee    `gorm:"foreignKey:EmployeeID"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key application-side
func (e *EngagementTimesheetApprover) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// OpportunityPermanentLock marks an opportunity as closed for estimate and
// quote edits. One row per opportunity, created the first time a timesheet
// entry with nonzero hours references it, and never deleted by normal flow.
type OpportunityPermanentLock struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primary_key"`
	OpportunityID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex;column:opportunity_id"`
	Opportunity        *Opportunity `gorm:"foreignKey:OpportunityID"`
	TriggeredByEntryID *uuid.UUID   `gorm:"type:uuid;column:triggered_by_entry_id"`
	LockedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;column:locked_at"`
}

// BeforeCreate assigns the primary key application-side
func (l *OpportunityPermanentLock) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName overrides the default pluralization
func (OpportunityPermanentLock) TableName() string {
	return "opportunity_permanent_locks"
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key application-side so the same models
// work against PostgreSQL and the sqlite test databases.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// AccountType classifies the business relationship with an account
type AccountType string

const (
	AccountTypeVendor   AccountType = "vendor"
	AccountTypeCustomer AccountType = "customer"
	AccountTypePartner  AccountType = "partner"
	AccountTypeNetwork  AccountType = "network"
)

// IsValid checks if the AccountType is a valid enum value
func (at AccountType) IsValid() bool {
	switch at {
	case AccountTypeVendor, AccountTypeCustomer, AccountTypePartner, AccountTypeNetwork:
		return true
	}
	return false
}

// Account represents a client, vendor, or partner organization
type Account struct {
	BaseModel
	CompanyName   string        `gorm:"type:varchar(200);not null;uniqueIndex;column:company_name"`
	Type          AccountType   `gorm:"type:varchar(50);not null;default:'customer';index"`
	Website       string        `gorm:"type:varchar(500)"`
	Phone         string        `gorm:"type:varchar(50)"`
	AddressLine1  string        `gorm:"type:varchar(500);column:address_line1"`
	AddressLine2  string        `gorm:"type:varchar(500);column:address_line2"`
	City          string        `gorm:"type:varchar(100)"`
	State         string        `gorm:"type:varchar(100)"`
	PostalCode    string        `gorm:"type:varchar(20);column:postal_code"`
	Country       string        `gorm:"type:varchar(100)"`
	Notes         string        `gorm:"type:text"`
	IsActive      bool          `gorm:"not null;default:true;column:is_active"`
	BillingTermID *uuid.UUID    `gorm:"type:uuid;column:billing_term_id;index"`
	BillingTerm   *BillingTerm  `gorm:"foreignKey:BillingTermID"`
	Contacts      []Contact     `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Opportunities []Opportunity `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// Contact represents an individual person at an account
type Contact struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;index;column:account_id"`
	Account   *Account  `gorm:"foreignKey:AccountID"`
	FirstName string    `gorm:"type:varchar(100);not null;column:first_name"`
	LastName  string    `gorm:"type:varchar(100);not null;column:last_name"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Title     string    `gorm:"type:varchar(100)"`
	Notes     string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// BillingTerm is a lookup row describing payment terms (e.g. NET30)
type BillingTerm struct {
	BaseModel
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description  string `gorm:"type:varchar(500)"`
	DaysUntilDue int    `gorm:"not null;default:0;column:days_until_due"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active"`
	SortOrder    int    `gorm:"not null;default:0;column:sort_order"`
}

// Role represents a billable staffing role (e.g. Senior Consultant)
type Role struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	IsActive    bool       `gorm:"not null;default:true;column:is_active"`
	Rates       []RoleRate `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// RoleRate is an hourly rate for a role scoped to a delivery center and
// currency. The (role, delivery_center, currency) triple is unique at the
// database level, not just in application logic.
type RoleRate struct {
	BaseModel
	RoleID           uuid.UUID       `gorm:"type:uuid;not null;column:role_id;uniqueIndex:uq_role_rate_scope"`
	Role             *Role           `gorm:"foreignKey:RoleID"`
	DeliveryCenterID uuid.UUID       `gorm:"type:uuid;not null;column:delivery_center_id;uniqueIndex:uq_role_rate_scope"`
	DeliveryCenter   *DeliveryCenter `gorm:"foreignKey:DeliveryCenterID"`
	Currency         string          `gorm:"type:varchar(3);not null;uniqueIndex:uq_role_rate_scope"`
	HourlyRate       decimal.Decimal `gorm:"type:decimal(15,2);not null;column:hourly_rate"`
	EffectiveDate    *time.Time      `gorm:"type:date;column:effective_date"`
}

// DeliveryCenter is a staffing/cost locality with its own default currency
type DeliveryCenter struct {
	BaseModel
	Name            string                   `gorm:"type:varchar(200);not null"`
	Code            string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Region          string                   `gorm:"type:varchar(100)"`
	DefaultCurrency string                   `gorm:"type:varchar(3);not null;default:'USD';column:default_currency"`
	IsActive        bool                     `gorm:"not null;default:true;column:is_active"`
	Approvers       []DeliveryCenterApprover `gorm:"foreignKey:DeliveryCenterID"`
}

// DeliveryCenterApprover links an employee who can approve on behalf of a
// delivery center. Pure association row: created and deleted independently
// of either endpoint's lifecycle.
type DeliveryCenterApprover struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	DeliveryCenterID uuid.UUID       `gorm:"type:uuid;not null;index;column:delivery_center_id;uniqueIndex:uq_dc_approver"`
	DeliveryCenter   *DeliveryCenter `gorm:"foreignKey:DeliveryCenterID"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;column:employee_id;uniqueIndex:uq_dc_approver"`
	Employee         *Employee       `gorm:"foreignKey:EmployeeID"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the primary key application-side
func (a *DeliveryCenterApprover) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// EmployeeStatus gates authentication and staffing eligibility
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on_leave"
)

// IsValid checks if the EmployeeStatus is a valid enum value
func (es EmployeeStatus) IsValid() bool {
	switch es {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

// Employee represents a member of the firm. The three rate fields are
// independent: what an hour costs internally, what it is billed at
// internally (cross-center work), and what clients are billed.
type Employee struct {
	BaseModel
	FirstName        string          `gorm:"type:varchar(100);not null;column:first_name"`
	LastName         string          `gorm:"type:varchar(100);not null;column:last_name"`
	Email            string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string          `gorm:"type:varchar(255);not null;column:password_hash"`
	Title            string          `gorm:"type:varchar(100)"`
	Status           EmployeeStatus  `gorm:"type:varchar(50);not null;default:'active';index"`
	InternalCostRate decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:internal_cost_rate"`
	InternalBillRate decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:internal_bill_rate"`
	ExternalBillRate decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0;column:external_bill_rate"`
	DeliveryCenterID *uuid.UUID      `gorm:"type:uuid;column:delivery_center_id;index"`
	DeliveryCenter   *DeliveryCenter `gorm:"foreignKey:DeliveryCenterID"`
	CalendarCode     *string         `gorm:"type:varchar(50);column:calendar_code"`
	Skills           pq.StringArray  `gorm:"type:text[]"`
	IsAdmin          bool            `gorm:"not null;default:false;column:is_admin"`
	HireDate         *time.Time      `gorm:"type:date;column:hire_date"`
}

// FullName returns the employee's full name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// CanAuthenticate reports whether the employee may obtain or use a token
func (e *Employee) CanAuthenticate() bool {
	return e.Status == EmployeeStatusActive
}

// CalendarDay is one working day in a named calendar: one row per
// (calendar_code, date), flagging holidays and recording the financial
// period and working-hours baseline.
type CalendarDay struct {
	BaseModel
	CalendarCode    string          `gorm:"type:varchar(50);not null;column:calendar_code;uniqueIndex:uq_calendar_day"`
	Date            time.Time       `gorm:"type:date;not null;uniqueIndex:uq_calendar_day"`
	IsHoliday       bool            `gorm:"not null;default:false;column:is_holiday"`
	HolidayName     string          `gorm:"type:varchar(200);column:holiday_name"`
	FinancialPeriod string          `gorm:"type:varchar(20);column:financial_period"`
	WorkingHours    decimal.Decimal `gorm:"type:decimal(4,2);not null;default:8;column:working_hours"`
}

// TableName overrides the default pluralization
func (CalendarDay) TableName() string {
	return "calendar_days"
}

// CurrencyRateSource identifies where a rate came from
type CurrencyRateSource string

const (
	CurrencyRateSourceManual    CurrencyRateSource = "manual"
	CurrencyRateSourceWarehouse CurrencyRateSource = "warehouse"
)

// CurrencyRate is a conversion rate effective from a given date. The
// (from, to, effective_date) triple is unique; the warehouse sync job
// upserts on that key.
type CurrencyRate struct {
	BaseModel
	FromCurrency  string             `gorm:"type:varchar(3);not null;column:from_currency;uniqueIndex:uq_currency_rate"`
	ToCurrency    string             `gorm:"type:varchar(3);not null;column:to_currency;uniqueIndex:uq_currency_rate"`
	Rate          decimal.Decimal    `gorm:"type:decimal(18,8);not null"`
	EffectiveDate time.Time          `gorm:"type:date;not null;column:effective_date;uniqueIndex:uq_currency_rate"`
	Source        CurrencyRateSource `gorm:"type:varchar(20);not null;default:'manual'"`
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs. Update requests use pointer fields so that omitted fields
// are left untouched (partial update semantics).

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAccountRequest struct {
	CompanyName   string      `json:"companyName" validate:"required,max=200"`
	Type          AccountType `json:"type" validate:"required"`
	Website       string      `json:"website,omitempty" validate:"max=500"`
	Phone         string      `json:"phone,omitempty" validate:"max=50"`
	AddressLine1  string      `json:"addressLine1,omitempty" validate:"max=500"`
	AddressLine2  string      `json:"addressLine2,omitempty" validate:"max=500"`
	City          string      `json:"city,omitempty" validate:"max=100"`
	State         string      `json:"state,omitempty" validate:"max=100"`
	PostalCode    string      `json:"postalCode,omitempty" validate:"max=20"`
	Country       string      `json:"country,omitempty" validate:"max=100"`
	Notes         string      `json:"notes,omitempty"`
	BillingTermID *uuid.UUID  `json:"billingTermId,omitempty"`
}

type UpdateAccountRequest struct {
	CompanyName   *string      `json:"companyName,omitempty" validate:"omitempty,min=1,max=200"`
	Type          *AccountType `json:"type,omitempty"`
	Website       *string      `json:"website,omitempty" validate:"omitempty,max=500"`
	Phone         *string      `json:"phone,omitempty" validate:"omitempty,max=50"`
	AddressLine1  *string      `json:"addressLine1,omitempty" validate:"omitempty,max=500"`
	AddressLine2  *string      `json:"addressLine2,omitempty" validate:"omitempty,max=500"`
	City          *string      `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string      `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode    *string      `json:"postalCode,omitempty" validate:"omitempty,max=20"`
	Country       *string      `json:"country,omitempty" validate:"omitempty,max=100"`
	Notes         *string      `json:"notes,omitempty"`
	BillingTermID *uuid.UUID   `json:"billingTermId,omitempty"`
	IsActive      *bool        `json:"isActive,omitempty"`
}

type CreateContactRequest struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
	FirstName string    `json:"firstName" validate:"required,max=100"`
	LastName  string    `json:"lastName" validate:"required,max=100"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     string    `json:"phone,omitempty" validate:"max=50"`
	Title     string    `json:"title,omitempty" validate:"max=100"`
	Notes     string    `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Title     *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Notes     *string `json:"notes,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type CreateBillingTermRequest struct {
	Code         string `json:"code" validate:"required,max=50"`
	Description  string `json:"description,omitempty" validate:"max=500"`
	DaysUntilDue int    `json:"daysUntilDue" validate:"gte=0"`
	SortOrder    int    `json:"sortOrder,omitempty" validate:"gte=0"`
}

type UpdateBillingTermRequest struct {
	Code         *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
	DaysUntilDue *int    `json:"daysUntilDue,omitempty" validate:"omitempty,gte=0"`
	SortOrder    *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type CreateRoleRateRequest struct {
	DeliveryCenterID uuid.UUID       `json:"deliveryCenterId" validate:"required"`
	Currency         string          `json:"currency" validate:"required,len=3,alpha"`
	HourlyRate       decimal.Decimal `json:"hourlyRate" validate:"required"`
	EffectiveDate    *string         `json:"effectiveDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateRoleRateRequest struct {
	HourlyRate    *decimal.Decimal `json:"hourlyRate,omitempty"`
	EffectiveDate *string          `json:"effectiveDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateDeliveryCenterRequest struct {
	Code            string `json:"code" validate:"required,max=50"`
	Name            string `json:"name" validate:"required,max=200"`
	Region          string `json:"region,omitempty" validate:"max=100"`
	DefaultCurrency string `json:"defaultCurrency" validate:"required,len=3,alpha"`
}

type UpdateDeliveryCenterRequest struct {
	Code            *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Region          *string `json:"region,omitempty" validate:"omitempty,max=100"`
	DefaultCurrency *string `json:"defaultCurrency,omitempty" validate:"omitempty,len=3,alpha"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

type AddDeliveryCenterApproverRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
}

type CreateEmployeeRequest struct {
	FirstName         string           `json:"firstName" validate:"required,max=100"`
	LastName          string           `json:"lastName" validate:"required,max=100"`
	Email             string           `json:"email" validate:"required,email,max=255"`
	Password          string           `json:"password" validate:"required,min=8"`
	Status           EmployeeStatus   `json:"status,omitempty"`
	Title            string           `json:"title,omitempty" validate:"max=100"`
	InternalCostRate *decimal.Decimal `json:"internalCostRate,omitempty"`
	InternalBillRate *decimal.Decimal `json:"internalBillRate,omitempty"`
	ExternalBillRate *decimal.Decimal `json:"externalBillRate,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	CalendarCode     *string          `json:"calendarCode,omitempty" validate:"omitempty,max=50"`
	Skills           []string         `json:"skills,omitempty"`
	IsAdmin          bool             `json:"isAdmin,omitempty"`
	HireDate         *string          `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FirstName         *string          `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName          *string          `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email             *string          `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password          *string          `json:"password,omitempty" validate:"omitempty,min=8"`
	Status           *EmployeeStatus  `json:"status,omitempty"`
	Title            *string          `json:"title,omitempty" validate:"omitempty,max=100"`
	InternalCostRate *decimal.Decimal `json:"internalCostRate,omitempty"`
	InternalBillRate *decimal.Decimal `json:"internalBillRate,omitempty"`
	ExternalBillRate *decimal.Decimal `json:"externalBillRate,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	CalendarCode     *string          `json:"calendarCode,omitempty" validate:"omitempty,max=50"`
	Skills           []string         `json:"skills,omitempty"`
	IsAdmin          *bool            `json:"isAdmin,omitempty"`
	HireDate         *string          `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateCalendarDayRequest struct {
	CalendarCode    string           `json:"calendarCode" validate:"required,max=50"`
	Date            string           `json:"date" validate:"required,datetime=2006-01-02"`
	IsHoliday       bool             `json:"isHoliday,omitempty"`
	HolidayName     string           `json:"holidayName,omitempty" validate:"max=200"`
	FinancialPeriod string           `json:"financialPeriod,omitempty" validate:"max=20"`
	WorkingHours    *decimal.Decimal `json:"workingHours,omitempty"`
}

type UpdateCalendarDayRequest struct {
	IsHoliday       *bool            `json:"isHoliday,omitempty"`
	HolidayName     *string          `json:"holidayName,omitempty" validate:"omitempty,max=200"`
	FinancialPeriod *string          `json:"financialPeriod,omitempty" validate:"omitempty,max=20"`
	WorkingHours    *decimal.Decimal `json:"workingHours,omitempty"`
}

type CreateCurrencyRateRequest struct {
	FromCurrency  string          `json:"fromCurrency" validate:"required,len=3,alpha"`
	ToCurrency    string          `json:"toCurrency" validate:"required,len=3,alpha"`
	Rate          decimal.Decimal `json:"rate" validate:"required"`
	EffectiveDate string          `json:"effectiveDate" validate:"required,datetime=2006-01-02"`
}

type UpdateCurrencyRateRequest struct {
	Rate *decimal.Decimal `json:"rate,omitempty"`
}

type CreateOpportunityRequest struct {
	AccountID       uuid.UUID  `json:"accountId" validate:"required"`
	Name            string     `json:"name" validate:"required,max=200"`
	Description     string     `json:"description,omitempty"`
	OwnerEmployeeID *uuid.UUID `json:"ownerEmployeeId,omitempty"`
	Currency        string     `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StartDate       *string    `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string    `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateOpportunityRequest struct {
	Name            *string           `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string           `json:"description,omitempty"`
	Stage           *OpportunityStage `json:"stage,omitempty"`
	OwnerEmployeeID *uuid.UUID        `json:"ownerEmployeeId,omitempty"`
	Currency        *string           `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StartDate       *string           `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string           `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateReleaseRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Version   int     `json:"version,omitempty" validate:"omitempty,gte=1"`
	StartDate *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateReleaseRequest struct {
	Name      *string        `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Version   *int           `json:"version,omitempty" validate:"omitempty,gte=1"`
	Status    *ReleaseStatus `json:"status,omitempty"`
	StartDate *string        `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string        `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type AddEmployeeEngagementRequest struct {
	EmployeeID uuid.UUID  `json:"employeeId" validate:"required"`
	RoleID     *uuid.UUID `json:"roleId,omitempty"`
}

type AddEngagementApproverRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
}

type CreateEstimateRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Currency  string  `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StartDate *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes,omitempty"`
}

type UpdateEstimateRequest struct {
	Name      *string         `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Status    *EstimateStatus `json:"status,omitempty"`
	Currency  *string         `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	StartDate *string         `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string         `json:"notes,omitempty"`
}

type CreateEstimatePhaseRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	DurationWks int    `json:"durationWeeks,omitempty" validate:"gte=0"`
}

type UpdateEstimatePhaseRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DurationWks *int    `json:"durationWeeks,omitempty" validate:"omitempty,gte=0"`
}

type CreateEstimateLineItemRequest struct {
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      string           `json:"description,omitempty" validate:"max=500"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate,omitempty"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

type UpdateEstimateLineItemRequest struct {
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate,omitempty"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

type CreateQuoteRequest struct {
	SourceEstimateID *uuid.UUID       `json:"sourceEstimateId,omitempty"`
	Currency         string           `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	QuoteDate        *string          `json:"quoteDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil       *string          `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent,omitempty"`
	Notes            string           `json:"notes,omitempty"`
}

type UpdateQuoteRequest struct {
	Currency        *string          `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	QuoteDate       *string          `json:"quoteDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil      *string          `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// UpdateQuoteApprovalRequest carries an approval-style status transition,
// separate from the draft/active/inactive lifecycle
type UpdateQuoteApprovalRequest struct {
	ApprovalStatus QuoteApprovalStatus `json:"approvalStatus" validate:"required"`
}

type CreateQuotePhaseRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	DurationWks int    `json:"durationWeeks,omitempty" validate:"gte=0"`
}

type UpdateQuotePhaseRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DurationWks *int    `json:"durationWeeks,omitempty" validate:"omitempty,gte=0"`
}

type CreateQuoteLineItemRequest struct {
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      string           `json:"description,omitempty" validate:"max=500"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate,omitempty"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

type UpdateQuoteLineItemRequest struct {
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate,omitempty"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

type CreateQuotePaymentTriggerRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	DueDate     *string         `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateQuotePaymentTriggerRequest struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateQuoteVariableCompensationRequest struct {
	Description string           `json:"description" validate:"required,max=500"`
	Percent     decimal.Decimal  `json:"percent" validate:"required"`
	CapAmount   *decimal.Decimal `json:"capAmount,omitempty"`
}

type UpdateQuoteVariableCompensationRequest struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Percent     *decimal.Decimal `json:"percent,omitempty"`
	CapAmount   *decimal.Decimal `json:"capAmount,omitempty"`
}

type CreateTimesheetRequest struct {
	EmployeeID    uuid.UUID `json:"employeeId" validate:"required"`
	WeekStartDate string    `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
}

type CreateTimesheetEntryRequest struct {
	OpportunityID uuid.UUID       `json:"opportunityId" validate:"required"`
	EntryDate     string          `json:"entryDate" validate:"required,datetime=2006-01-02"`
	Hours         decimal.Decimal `json:"hours"`
	Note          string          `json:"note,omitempty" validate:"max=500"`
}

type UpdateTimesheetEntryRequest struct {
	OpportunityID *uuid.UUID       `json:"opportunityId,omitempty"`
	EntryDate     *string          `json:"entryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hours         *decimal.Decimal `json:"hours,omitempty"`
	Note          *string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

// DecideTimesheetRequest approves or rejects a submitted timesheet
type DecideTimesheetRequest struct {
	Comment string `json:"comment,omitempty" validate:"max=500"`
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs for API responses

// ListResponse wraps a page of results with the total matching count
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

type AccountDTO struct {
	ID            uuid.UUID   `json:"id"`
	CompanyName   string      `json:"companyName"`
	Type          AccountType `json:"type"`
	Website       string      `json:"website,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	AddressLine1  string      `json:"addressLine1,omitempty"`
	AddressLine2  string      `json:"addressLine2,omitempty"`
	City          string      `json:"city,omitempty"`
	State         string      `json:"state,omitempty"`
	PostalCode    string      `json:"postalCode,omitempty"`
	Country       string      `json:"country,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	BillingTermID *uuid.UUID  `json:"billingTermId,omitempty"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     string      `json:"createdAt"` // ISO 8601
	UpdatedAt     string      `json:"updatedAt"` // ISO 8601
}

// AccountWithDetailsDTO includes an account with its related entities
type AccountWithDetailsDTO struct {
	AccountDTO
	Contacts      []ContactDTO     `json:"contacts,omitempty"`
	Opportunities []OpportunityDTO `json:"opportunities,omitempty"`
}

type ContactDTO struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   uuid.UUID  `json:"accountId"`
	AccountName string     `json:"accountName,omitempty"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Title       string     `json:"title,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

type BillingTermDTO struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	DaysUntilDue int       `json:"daysUntilDue"`
	SortOrder    int       `json:"sortOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type RoleDTO struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"isActive"`
	Rates       []RoleRateDTO `json:"rates,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

type RoleRateDTO struct {
	ID                 uuid.UUID       `json:"id"`
	RoleID             uuid.UUID       `json:"roleId"`
	DeliveryCenterID   uuid.UUID       `json:"deliveryCenterId"`
	DeliveryCenterCode string          `json:"deliveryCenterCode,omitempty"`
	Currency           string          `json:"currency"`
	HourlyRate         decimal.Decimal `json:"hourlyRate"`
	EffectiveDate      *string         `json:"effectiveDate,omitempty"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
}

type DeliveryCenterDTO struct {
	ID              uuid.UUID                 `json:"id"`
	Code            string                    `json:"code"`
	Name            string                    `json:"name"`
	Region          string                    `json:"region,omitempty"`
	DefaultCurrency string                    `json:"defaultCurrency"`
	IsActive        bool                      `json:"isActive"`
	Approvers       []DeliveryCenterApproverDTO `json:"approvers,omitempty"`
	CreatedAt       string                    `json:"createdAt"`
	UpdatedAt       string                    `json:"updatedAt"`
}

type DeliveryCenterApproverDTO struct {
	ID               uuid.UUID `json:"id"`
	DeliveryCenterID uuid.UUID `json:"deliveryCenterId"`
	EmployeeID       uuid.UUID `json:"employeeId"`
	EmployeeName     string    `json:"employeeName,omitempty"`
}

type EmployeeDTO struct {
	ID               uuid.UUID       `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	FullName         string          `json:"fullName"`
	Email            string          `json:"email"`
	Status           EmployeeStatus  `json:"status"`
	Title            string          `json:"title,omitempty"`
	InternalCostRate decimal.Decimal `json:"internalCostRate"`
	InternalBillRate decimal.Decimal `json:"internalBillRate"`
	ExternalBillRate decimal.Decimal `json:"externalBillRate"`
	DeliveryCenterID *uuid.UUID      `json:"deliveryCenterId,omitempty"`
	CalendarCode     *string         `json:"calendarCode,omitempty"`
	Skills           []string        `json:"skills,omitempty"`
	IsAdmin          bool            `json:"isAdmin"`
	HireDate         *string         `json:"hireDate,omitempty"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

type CalendarDayDTO struct {
	ID              uuid.UUID       `json:"id"`
	CalendarCode    string          `json:"calendarCode"`
	Date            string          `json:"date"` // YYYY-MM-DD
	IsHoliday       bool            `json:"isHoliday"`
	HolidayName     string          `json:"holidayName,omitempty"`
	FinancialPeriod string          `json:"financialPeriod,omitempty"`
	WorkingHours    decimal.Decimal `json:"workingHours"`
}

type CurrencyRateDTO struct {
	ID            uuid.UUID          `json:"id"`
	FromCurrency  string             `json:"fromCurrency"`
	ToCurrency    string             `json:"toCurrency"`
	Rate          decimal.Decimal    `json:"rate"`
	EffectiveDate string             `json:"effectiveDate"` // YYYY-MM-DD
	Source        CurrencyRateSource `json:"source"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type OpportunityDTO struct {
	ID              uuid.UUID        `json:"id"`
	AccountID       uuid.UUID        `json:"accountId"`
	AccountName     string           `json:"accountName,omitempty"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Stage           OpportunityStage `json:"stage"`
	OwnerEmployeeID *uuid.UUID       `json:"ownerEmployeeId,omitempty"`
	Currency        string           `json:"currency"`
	StartDate       *string          `json:"startDate,omitempty"`
	EndDate         *string          `json:"endDate,omitempty"`
	IsLocked        bool             `json:"isLocked"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type ReleaseDTO struct {
	ID            uuid.UUID     `json:"id"`
	OpportunityID uuid.UUID     `json:"opportunityId"`
	Name          string        `json:"name"`
	Version       int           `json:"version"`
	Status        ReleaseStatus `json:"status"`
	StartDate     *string       `json:"startDate,omitempty"`
	EndDate       *string       `json:"endDate,omitempty"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

type EmployeeEngagementDTO struct {
	ID            uuid.UUID  `json:"id"`
	OpportunityID uuid.UUID  `json:"opportunityId"`
	EmployeeID    uuid.UUID  `json:"employeeId"`
	EmployeeName  string     `json:"employeeName,omitempty"`
	RoleID        *uuid.UUID `json:"roleId,omitempty"`
	RoleName      string     `json:"roleName,omitempty"`
	CreatedAt     string     `json:"createdAt"`
}

type EngagementTimesheetApproverDTO struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID uuid.UUID `json:"opportunityId"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	EmployeeName  string    `json:"employeeName,omitempty"`
	CreatedAt     string    `json:"createdAt"`
}

type EstimateDTO struct {
	ID            uuid.UUID          `json:"id"`
	OpportunityID uuid.UUID          `json:"opportunityId"`
	Name          string             `json:"name"`
	Status        EstimateStatus     `json:"status"`
	Currency      string             `json:"currency"`
	StartDate     *string            `json:"startDate,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Phases        []EstimatePhaseDTO `json:"phases,omitempty"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type EstimatePhaseDTO struct {
	ID          uuid.UUID             `json:"id"`
	EstimateID  uuid.UUID             `json:"estimateId"`
	Name        string                `json:"name"`
	RowOrder    int                   `json:"rowOrder"`
	DurationWks int                   `json:"durationWeeks"`
	LineItems   []EstimateLineItemDTO `json:"lineItems,omitempty"`
}

type EstimateLineItemDTO struct {
	ID               uuid.UUID        `json:"id"`
	PhaseID          uuid.UUID        `json:"phaseId"`
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	RoleName         string           `json:"roleName,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      string           `json:"description,omitempty"`
	RowOrder         int              `json:"rowOrder"`
	HourlyRate       decimal.Decimal  `json:"hourlyRate"`
	TotalHours       decimal.Decimal  `json:"totalHours"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

// WeeklyHoursDTO is shared by estimate and quote line items. The week
// start date keys the distribution; one entry per week per line item.
type WeeklyHoursDTO struct {
	WeekStartDate string          `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
	Hours         decimal.Decimal `json:"hours"`
}

type QuoteDTO struct {
	ID               uuid.UUID           `json:"id"`
	OpportunityID    uuid.UUID           `json:"opportunityId"`
	SourceEstimateID *uuid.UUID          `json:"sourceEstimateId,omitempty"`
	DisplayName      string              `json:"displayName"`
	Version          int                 `json:"version"`
	Status           QuoteStatus         `json:"status"`
	ApprovalStatus   QuoteApprovalStatus `json:"approvalStatus"`
	Currency         string              `json:"currency"`
	QuoteDate        *string             `json:"quoteDate,omitempty"`
	ValidUntil       *string             `json:"validUntil,omitempty"`
	DiscountPercent  decimal.Decimal     `json:"discountPercent"`
	Notes            string              `json:"notes,omitempty"`
	Phases           []QuotePhaseDTO     `json:"phases,omitempty"`
	PaymentTriggers  []QuotePaymentTriggerDTO `json:"paymentTriggers,omitempty"`
	VariableComps    []QuoteVariableCompensationDTO `json:"variableCompensations,omitempty"`
	CreatedAt        string              `json:"createdAt"`
	UpdatedAt        string              `json:"updatedAt"`
}

type QuotePhaseDTO struct {
	ID          uuid.UUID          `json:"id"`
	QuoteID     uuid.UUID          `json:"quoteId"`
	Name        string             `json:"name"`
	RowOrder    int                `json:"rowOrder"`
	DurationWks int                `json:"durationWeeks"`
	LineItems   []QuoteLineItemDTO `json:"lineItems,omitempty"`
}

type QuoteLineItemDTO struct {
	ID               uuid.UUID        `json:"id"`
	PhaseID          uuid.UUID        `json:"phaseId"`
	RoleID           *uuid.UUID       `json:"roleId,omitempty"`
	RoleName         string           `json:"roleName,omitempty"`
	DeliveryCenterID *uuid.UUID       `json:"deliveryCenterId,omitempty"`
	Description      string           `json:"description,omitempty"`
	RowOrder         int              `json:"rowOrder"`
	HourlyRate       decimal.Decimal  `json:"hourlyRate"`
	TotalHours       decimal.Decimal  `json:"totalHours"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	WeeklyHours      []WeeklyHoursDTO `json:"weeklyHours,omitempty"`
}

type QuotePaymentTriggerDTO struct {
	ID          uuid.UUID       `json:"id"`
	QuoteID     uuid.UUID       `json:"quoteId"`
	Description string          `json:"description"`
	RowOrder    int             `json:"rowOrder"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *string         `json:"dueDate,omitempty"`
}

type QuoteVariableCompensationDTO struct {
	ID          uuid.UUID        `json:"id"`
	QuoteID     uuid.UUID        `json:"quoteId"`
	Description string           `json:"description"`
	RowOrder    int              `json:"rowOrder"`
	Percent     decimal.Decimal  `json:"percent"`
	CapAmount   *decimal.Decimal `json:"capAmount,omitempty"`
}

type DocumentDTO struct {
	ID           uuid.UUID  `json:"id"`
	QuoteID      uuid.UUID  `json:"quoteId"`
	FileName     string     `json:"fileName"`
	ContentType  string     `json:"contentType"`
	SizeBytes    int64      `json:"sizeBytes"`
	UploadedByID *uuid.UUID `json:"uploadedById,omitempty"`
	CreatedAt    string     `json:"createdAt"`
}

type TimesheetDTO struct {
	ID            uuid.UUID                    `json:"id"`
	EmployeeID    uuid.UUID                    `json:"employeeId"`
	EmployeeName  string                       `json:"employeeName,omitempty"`
	WeekStartDate string                       `json:"weekStartDate"` // YYYY-MM-DD
	Status        TimesheetStatus              `json:"status"`
	TotalHours    decimal.Decimal              `json:"totalHours"`
	SubmittedAt   *string                      `json:"submittedAt,omitempty"`
	DecidedAt     *string                      `json:"decidedAt,omitempty"`
	DecidedByID   *uuid.UUID                   `json:"decidedById,omitempty"`
	Entries       []TimesheetEntryDTO          `json:"entries,omitempty"`
	StatusHistory []TimesheetStatusHistoryDTO  `json:"statusHistory,omitempty"`
}

type TimesheetEntryDTO struct {
	ID              uuid.UUID       `json:"id"`
	TimesheetID     uuid.UUID       `json:"timesheetId"`
	OpportunityID   uuid.UUID       `json:"opportunityId"`
	OpportunityName string          `json:"opportunityName,omitempty"`
	EntryDate       string          `json:"entryDate"` // YYYY-MM-DD
	Hours           decimal.Decimal `json:"hours"`
	RowOrder        int             `json:"rowOrder"`
	Note            string          `json:"note,omitempty"`
}

type TimesheetStatusHistoryDTO struct {
	ID          uuid.UUID       `json:"id"`
	FromStatus  TimesheetStatus `json:"fromStatus"`
	ToStatus    TimesheetStatus `json:"toStatus"`
	ChangedByID *uuid.UUID      `json:"changedById,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	ChangedAt   string          `json:"changedAt"`
}

// LoginResponse carries a signed bearer token and its expiry
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	ExpiresIn   int         `json:"expiresIn"` // seconds
	Employee    EmployeeDTO `json:"employee"`
}

// HealthResponse reports overall service status plus per-dependency checks
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

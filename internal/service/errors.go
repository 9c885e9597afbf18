package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when credentials are missing or wrong
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccountInactive is returned when an inactive employee attempts to authenticate
	ErrAccountInactive = errors.New("account is not active")

	// ErrOpportunityLocked is returned when an estimate or quote write hits
	// a permanently locked opportunity
	ErrOpportunityLocked = errors.New("opportunity is locked: hours have been recorded against it")

	// ErrEstimateLocked is returned when editing an estimate that backs an active quote
	ErrEstimateLocked = errors.New("estimate is locked by an active quote")

	// ErrBillingTermInUse is returned when deleting a billing term still referenced by accounts
	ErrBillingTermInUse = errors.New("billing term is referenced by existing accounts")

	// ErrRoleInUse is returned when deleting a role still referenced by estimate or quote line items
	ErrRoleInUse = errors.New("role is referenced by existing line items")

	// ErrInvalidTransition is returned for a state change a lifecycle does not allow
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTimesheetImmutable is returned when modifying an approved timesheet
	ErrTimesheetImmutable = errors.New("approved timesheets cannot be modified")

	// ErrInvalidDateRange is returned when a start date falls after its end date
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)

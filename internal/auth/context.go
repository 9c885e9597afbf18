package auth

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeContext holds the authenticated employee's identity
type EmployeeContext struct {
	EmployeeID  uuid.UUID
	Email       string
	DisplayName string
	IsAdmin     bool
}

type contextKey string

const employeeContextKey contextKey = "employeeContext"

// WithEmployeeContext adds the employee identity to the context
func WithEmployeeContext(ctx context.Context, emp *EmployeeContext) context.Context {
	return context.WithValue(ctx, employeeContextKey, emp)
}

// FromContext extracts the employee identity from the context
func FromContext(ctx context.Context) (*EmployeeContext, bool) {
	emp, ok := ctx.Value(employeeContextKey).(*EmployeeContext)
	return emp, ok
}

// MustFromContext extracts the employee identity or panics. Only call
// behind the Authenticate middleware.
func MustFromContext(ctx context.Context) *EmployeeContext {
	emp, ok := FromContext(ctx)
	if !ok {
		panic("employee context not found in context")
	}
	return emp
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default truncation lengths for the name components of a quote display name
const (
	DefaultQuoteAccountNameMax     = 12
	DefaultQuoteOpportunityNameMax = 15
)

// ComputeQuoteDisplayName builds the human-readable quote identifier
// "QT-{Account}-{Opportunity}-{MMDDYYYY}-{suffix}-v{version}". Name
// components are stripped to alphanumerics, fall back to "Unknown" when
// empty, and are truncated to the given max lengths. The date renders as
// MMDDYYYY or "00000000" when nil. The suffix is the first four hex
// characters of the quote id and is omitted when no id is supplied.
// Never fails on missing inputs.
func ComputeQuoteDisplayName(accountName, opportunityName *string, version int, quoteID *uuid.UUID, quoteDate *time.Time, accountMax, opportunityMax int) string {
	if accountMax <= 0 {
		accountMax = DefaultQuoteAccountNameMax
	}
	if opportunityMax <= 0 {
		opportunityMax = DefaultQuoteOpportunityNameMax
	}

	account := sanitizeNameComponent(accountName, accountMax)
	opportunity := sanitizeNameComponent(opportunityName, opportunityMax)

	date := "00000000"
	if quoteDate != nil && !quoteDate.IsZero() {
		date = quoteDate.Format("01022006")
	}

	parts := []string{"QT", account, opportunity, date}
	if quoteID != nil && *quoteID != uuid.Nil {
		hex := strings.ReplaceAll(quoteID.String(), "-", "")
		parts = append(parts, hex[:4])
	}
	parts = append(parts, fmt.Sprintf("v%d", version))

	return strings.Join(parts, "-")
}

// sanitizeNameComponent strips a name to alphanumerics, truncates it and
// falls back to "Unknown" when nothing remains
func sanitizeNameComponent(name *string, max int) string {
	if name == nil {
		return "Unknown"
	}
	var b strings.Builder
	for _, r := range *name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "Unknown"
	}
	if len(s) > max {
		s = s[:max]
	}
	return s
}

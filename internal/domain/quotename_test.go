package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeQuoteDisplayName(t *testing.T) {
	quoteID := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	quoteDate := time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		accountName     *string
		opportunityName *string
		version         int
		quoteID         *uuid.UUID
		quoteDate       *time.Time
		want            string
	}{
		{
			name:    "all inputs missing",
			version: 1,
			want:    "QT-Unknown-Unknown-00000000-v1",
		},
		{
			name:            "full inputs with sanitization and id suffix",
			accountName:     strPtr("Acme Corp!"),
			opportunityName: strPtr("Q1 2025 Renewal"),
			version:         3,
			quoteID:         &quoteID,
			quoteDate:       &quoteDate,
			want:            "QT-AcmeCorp-Q12025Renewal-02112025-a1b2-v3",
		},
		{
			name:            "names truncated to max lengths",
			accountName:     strPtr("Extraordinarily Long Account Name"),
			opportunityName: strPtr("Equally Long Opportunity Name"),
			version:         1,
			want:            "QT-Extraordinar-EquallyLongOppo-00000000-v1",
		},
		{
			name:            "symbol-only names fall back to Unknown",
			accountName:     strPtr("!!!"),
			opportunityName: strPtr("---"),
			version:         2,
			want:            "QT-Unknown-Unknown-00000000-v2",
		},
		{
			name:            "zero date treated as missing",
			accountName:     strPtr("Acme"),
			opportunityName: strPtr("Renewal"),
			version:         1,
			quoteDate:       &time.Time{},
			want:            "QT-Acme-Renewal-00000000-v1",
		},
		{
			name:            "nil uuid omits suffix",
			accountName:     strPtr("Acme"),
			opportunityName: strPtr("Renewal"),
			version:         1,
			quoteID:         &uuid.UUID{},
			want:            "QT-Acme-Renewal-00000000-v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQuoteDisplayName(tt.accountName, tt.opportunityName, tt.version, tt.quoteID, tt.quoteDate, 12, 15)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeQuoteDisplayNameDefaultMaxLengths(t *testing.T) {
	got := ComputeQuoteDisplayName(strPtr("Twelvecharacters"), strPtr("Fifteencharactersplus"), 1, nil, nil, 0, 0)
	assert.Equal(t, "QT-Twelvecharac-Fifteencharacte-00000000-v1", got)
}

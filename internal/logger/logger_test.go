package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/meridiancg/backoffice-api/internal/config"
	"github.com/meridiancg/backoffice-api/internal/logger"
)

func TestNewLoggerFallsBackToInfoOnBadLevel(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "chatty", Format: "json"},
		&config.AppConfig{Name: "backoffice-api", Environment: "test"},
	)
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestWithRequestAttachesRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	logger.WithRequest(zap.New(core), "GET", "/accounts", "req-123").Info("done")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/accounts", fields["path"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestWithEmployeeAttachesIdentityFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	logger.WithEmployee(zap.New(core), "emp-1", "jo@example.com").Info("employee logged in")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "emp-1", fields["employee_id"])
	assert.Equal(t, "jo@example.com", fields["employee_email"])
}

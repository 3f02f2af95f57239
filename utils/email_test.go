package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotifyDonorAssignedLogsFailure(t *testing.T) {
	// no mail config set, so the send fails and must be logged
	t.Setenv("ZEPTO_API_URL", "")
	t.Setenv("ZEPTO_API_KEY", "")
	t.Setenv("EMAIL_FROM", "")

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	NotifyDonorAssigned(logger, "karim@example.com", "Karim", "Rahim", "Dhaka Medical")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "donor-assigned email failed", entry.Message)
	assert.Equal(t, "karim@example.com", entry.ContextMap()["to"])
}

func TestNotifyDonorAssignedNilLogger(t *testing.T) {
	t.Setenv("ZEPTO_API_URL", "")

	assert.NotPanics(t, func() {
		NotifyDonorAssigned(nil, "karim@example.com", "Karim", "Rahim", "Dhaka Medical")
	})
}

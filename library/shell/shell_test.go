package shell_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/testutil/helper"
)

func Test_JournalEntryFrom_SerializesEventAndMetadata(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 1, 8, 14, 30, 0, 0, time.UTC)
	loan := core.LoanRecord{
		LoanID:     "E001",
		BorrowerID: "U001",
		BookID:     "L001",
		DueOn:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	event := core.BuildLoanRenewed(loan, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), 1, occurredAt)
	commandID := uuid.New()
	metadata := shell.NewEventMetadataCausedBy(commandID)

	// act
	entry, err := shell.JournalEntryFrom(event, metadata)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.LoanRenewedEventType, entry.EventType)
	assert.Equal(t, occurredAt, entry.OccurredAt)

	var payload core.LoanRenewed
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(entry.PayloadJSON, &payload))
	assert.Equal(t, "E001", payload.LoanID)
	assert.Equal(t, 1, payload.RenewalsGranted)

	readBack, err := shell.EventMetadataFrom(entry)
	require.NoError(t, err)
	assert.Equal(t, commandID.String(), readBack.CausationID)
	assert.Equal(t, commandID.String(), readBack.CorrelationID)
	assert.NotEqual(t, commandID.String(), readBack.MessageID)
}

func Test_NewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := shell.NewLogger("WARN", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func Test_NewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := shell.NewLogger("verbose", &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func Test_LogCommandSuccess_PrefersTheContextualLogger(t *testing.T) {
	plainLogger, plainSpy := helper.NewSpyLogger()
	contextualLogger, contextualSpy := helper.NewSpyLogger()

	shell.LogCommandSuccess(
		context.Background(), plainLogger, contextualLogger,
		"RenewLoan", "granted", 3*time.Millisecond, shell.HandlerResult{RetryAttempts: 1},
	)

	assert.Equal(t, 0, plainSpy.GetRecordCount())
	assert.True(t,
		contextualSpy.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
			WithAttr(shell.LogAttrCommandType, "RenewLoan").
			WithAttr(shell.LogAttrBusinessOutcome, "granted").
			WithDurationMS().
			Assert())
}

func Test_LogCommandError_WithOnlyAPlainLogger(t *testing.T) {
	logger, spy := helper.NewSpyLogger()

	shell.LogCommandError(
		context.Background(), logger, nil,
		"RenewLoan", errors.New("boom"), time.Millisecond, shell.HandlerResult{},
	)

	assert.True(t, spy.HasErrorLogWithMessage(shell.LogMsgCommandFailed).WithAttr(shell.LogAttrError, "boom").Assert())
}

package shell

import (
	"context"
	"math"
	"time"
)

const (
	// StatusSuccess indicates a command that changed state, or a query that completed.
	StatusSuccess = "success"

	// StatusRejected indicates a command a business rule denied.
	StatusRejected = "rejected"

	// StatusError indicates a processing error.
	StatusError = "error"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command handler started"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogMsgQueryStarted is logged when query processing begins.
	LogMsgQueryStarted = "query handler started"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query handler completed"

	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query handler failed"

	// LogMsgRetrying is logged before a retryable failure is retried.
	LogMsgRetrying = "retrying after retryable error"

	// LogMsgJournalFailed is logged when recording a decision in the journal fails.
	LogMsgJournalFailed = "journal append failed"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrError           = "error"
	LogAttrErrorType       = "error_type"
	LogAttrAttempt         = "attempt"
	LogAttrRetryAttempts   = "retry_attempts"
	LogAttrResultCount     = "result_count"
)

// LogCommandStart logs the start of command processing at debug level.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, command Command) {
	logDebug(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, command.CommandType())
}

// LogCommandSuccess logs a completed command with its business outcome at info level.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
	result HandlerResult,
) {

	logInfo(
		ctx, logger, contextualLogger,
		LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrRetryAttempts, result.RetryAttempts,
		LogAttrDurationMS, DurationToMilliseconds(duration),
	)
}

// LogCommandError logs a failed command at error level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
	duration time.Duration,
	result HandlerResult,
) {

	logError(
		ctx, logger, contextualLogger,
		LogMsgCommandFailed,
		LogAttrCommandType, commandType,
		LogAttrError, err.Error(),
		LogAttrErrorType, getErrorType(err),
		LogAttrRetryAttempts, result.RetryAttempts,
		LogAttrDurationMS, DurationToMilliseconds(duration),
	)
}

// LogQueryStart logs the start of query processing at debug level.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, query Query) {
	logDebug(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, query.QueryType())
}

// LogQuerySuccess logs a completed query at info level.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	resultCount int,
	duration time.Duration,
) {

	logInfo(
		ctx, logger, contextualLogger,
		LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrResultCount, resultCount,
		LogAttrDurationMS, DurationToMilliseconds(duration),
	)
}

// LogQueryError logs a failed query at error level.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
	duration time.Duration,
) {

	logError(
		ctx, logger, contextualLogger,
		LogMsgQueryFailed,
		LogAttrQueryType, queryType,
		LogAttrError, err.Error(),
		LogAttrDurationMS, DurationToMilliseconds(duration),
	)
}

// LogJournalError logs a failed journal append at warn level. The decision itself stands.
func LogJournalError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string, err error) {
	switch {
	case contextualLogger != nil:
		contextualLogger.WarnContext(ctx, LogMsgJournalFailed, LogAttrCommandType, commandType, LogAttrError, err.Error())
	case logger != nil:
		logger.Warn(LogMsgJournalFailed, LogAttrCommandType, commandType, LogAttrError, err.Error())
	}
}

// DurationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func DurationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func logDebug(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	switch {
	case contextualLogger != nil:
		contextualLogger.DebugContext(ctx, msg, args...)
	case logger != nil:
		logger.Debug(msg, args...)
	}
}

func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	switch {
	case contextualLogger != nil:
		contextualLogger.InfoContext(ctx, msg, args...)
	case logger != nil:
		logger.Info(msg, args...)
	}
}

func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	switch {
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, msg, args...)
	case logger != nil:
		logger.Error(msg, args...)
	}
}

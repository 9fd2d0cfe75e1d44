package shell

import (
	"context"
)

// Logger interface for operational logging. It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging. It is satisfied by *slog.Logger.
// If both are configured, the contextual variant is used.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and log instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, so every log line of a run carries the run id
// and repository without each call site repeating them.
type LogFields struct {
	RunID     *int64  // Snowflake id of the generation run
	Owner     *string // Repository owner
	Repo      *string // Repository name
	Stage     *string // Pipeline stage (e.g., "synthesize", "render", "review")
	Tracker   *string // Issue tracker backend
	Component string  // Component name (OTel semantic convention style, e.g., "releasenotes.brain.synthesizer")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.RunID != nil {
		result.RunID = new.RunID
	}
	if new.Owner != nil {
		result.Owner = new.Owner
	}
	if new.Repo != nil {
		result.Repo = new.Repo
	}
	if new.Stage != nil {
		result.Stage = new.Stage
	}
	if new.Tracker != nil {
		result.Tracker = new.Tracker
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{RunID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
// Useful for logging potentially long strings like tool arguments or results.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

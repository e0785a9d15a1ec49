package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

const attemptKey contextKey = "llm_attempt"

// WithAttemptID attaches a submission attempt id to the context so the
// event log can correlate every oracle call made for one attempt.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey, id)
}

// AttemptIDFrom extracts the attempt id from the context, if any.
func AttemptIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(attemptKey).(string); ok {
		return v
	}
	return ""
}

package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyBatchID contextKey = "batch_id"
	ContextKeyFile    contextKey = "file"
)

// WithBatchID adds a batch run ID to the context
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, ContextKeyBatchID, batchID)
}

// BatchIDFromContext extracts the batch run ID from context
func BatchIDFromContext(ctx context.Context) string {
	if batchID, ok := ctx.Value(ContextKeyBatchID).(string); ok {
		return batchID
	}
	return ""
}

// WithFile adds the current source filename to the context
func WithFile(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyFile, name)
}

// FileFromContext extracts the current source filename from context
func FileFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyFile).(string); ok {
		return name
	}
	return ""
}

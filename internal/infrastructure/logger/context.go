package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// DocumentIDKey is the context key for the document being priced
	DocumentIDKey contextKey = "document_id"
	// BatchIDKey is the context key for a batch pricing run
	BatchIDKey contextKey = "batch_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// WithDocumentID adds the document ID to context and returns the enriched logger
func WithDocumentID(ctx context.Context, logger *zap.Logger, documentID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, DocumentIDKey, documentID)
	enriched := logger.With(zap.String("document_id", documentID))
	return WithContext(ctx, enriched), enriched
}

// WithBatchID adds the batch ID to context and returns the enriched logger
func WithBatchID(ctx context.Context, logger *zap.Logger, batchID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, BatchIDKey, batchID)
	enriched := logger.With(zap.String("batch_id", batchID))
	return WithContext(ctx, enriched), enriched
}

// GetDocumentID retrieves the document ID from context
func GetDocumentID(ctx context.Context) string {
	if id, ok := ctx.Value(DocumentIDKey).(string); ok {
		return id
	}
	return ""
}

// GetBatchID retrieves the batch ID from context
func GetBatchID(ctx context.Context) string {
	if id, ok := ctx.Value(BatchIDKey).(string); ok {
		return id
	}
	return ""
}

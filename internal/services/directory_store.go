package services

//go:generate mockgen -source=directory_store.go -destination=mocks/directory_store_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/prefeitura-rio/bot-massagistas/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DirectoryStore is the append-only table holding the directory.
// ListEntries returns every row in insertion order with a fresh read on each
// call. AppendEntry either writes the whole row or nothing.
type DirectoryStore interface {
	ListEntries(ctx context.Context) ([]models.DirectoryEntry, error)
	AppendEntry(ctx context.Context, entry models.DirectoryEntry) error
}

// instrumentStoreCall wraps a store operation with a span and metrics
func instrumentStoreCall(ctx context.Context, backend, operation string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := observability.Tracer().Start(ctx, "directory_store."+operation,
		trace.WithAttributes(
			attribute.String("store.backend", backend),
			attribute.String("store.operation", operation),
		),
	)
	defer span.End()

	err := fn(ctx)

	observability.StoreOperationDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.StoreOperations.WithLabelValues(backend, operation, "error").Inc()
		return err
	}
	span.SetStatus(codes.Ok, "success")
	observability.StoreOperations.WithLabelValues(backend, operation, "success").Inc()
	return nil
}

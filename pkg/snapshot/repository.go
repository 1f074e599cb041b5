package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/DrSkyle/roadmap/pkg/graph"
	"github.com/DrSkyle/roadmap/pkg/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultKey is the blob key the map is stored under.
const DefaultKey = "city-road-map-v1.json"

// Repository persists records to a blob store.
type Repository struct {
	blobs  storage.BlobStore
	key    string
	logger *slog.Logger
	tracer trace.Tracer
}

// Option defines a functional configuration override.
type Option func(*Repository)

func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRepository(blobs storage.BlobStore, opts ...Option) *Repository {
	r := &Repository{
		blobs:  blobs,
		key:    DefaultKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer("roadmap/snapshot"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the blob key in use.
func (r *Repository) Key() string {
	return r.key
}

// Save encodes and writes the record.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	ctx, span := r.tracer.Start(ctx, "snapshot.Save", trace.WithAttributes(
		attribute.String("key", r.key),
		attribute.Int("cities", len(rec.Nodes)),
		attribute.Int("roads", len(rec.Edges)),
	))
	defer span.End()

	data, err := Encode(rec)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("encode map: %w", err)
	}
	if err := r.blobs.Put(ctx, r.key, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("save map: %w", err)
	}
	r.logger.Debug("Map saved", "key", r.key, "cities", len(rec.Nodes), "roads", len(rec.Edges))
	return nil
}

// Load reads the record. A missing or unreadable document yields false
// with a nil error; only backend failures are returned as errors.
func (r *Repository) Load(ctx context.Context) (Record, bool, error) {
	ctx, span := r.tracer.Start(ctx, "snapshot.Load", trace.WithAttributes(attribute.String("key", r.key)))
	defer span.End()

	data, err := r.blobs.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		r.logger.Debug("No saved map", "key", r.key)
		return Record{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Record{}, false, fmt.Errorf("load map: %w", err)
	}

	rec, ok := Decode(data)
	if !ok {
		r.logger.Warn("Saved map is malformed, starting empty", "key", r.key)
		span.SetAttributes(attribute.Bool("malformed", true))
	}
	return rec, ok, nil
}

// LoadInto loads the record into s. On any validation failure s is
// reset and false is returned.
func (r *Repository) LoadInto(ctx context.Context, s graph.Store) (bool, error) {
	rec, ok, err := r.Load(ctx)
	if err != nil || !ok {
		s.Reset()
		return false, err
	}
	if err := rec.Apply(s); err != nil {
		r.logger.Warn("Saved map breaks graph invariants, starting empty", "key", r.key, "error", err)
		s.Reset()
		return false, nil
	}
	return true, nil
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/recordstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Persistence keys, one JSON array per collection.
const (
	KeyAppointments = "yaelle_appointments"
	KeyClients      = "yaelle_clients"
	KeyTreatments   = "yaelle_treatments"
	KeyPosts        = "yaelle_posts"
)

var tracer = otel.Tracer("studio-service/storage")

// Repository is the only component that knows collection keys and encodings.
// Reads never fail on malformed data: an unparseable collection is treated as empty
// and overwritten on the next write. Writes are serialized in-process and
// version-checked in the store.
type Repository struct {
	store  recordstore.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func NewRepository(store recordstore.Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

func (r *Repository) Appointments(ctx context.Context) ([]model.Appointment, error) {
	items, _, err := load[model.Appointment](ctx, r, KeyAppointments)
	return items, err
}

func (r *Repository) Clients(ctx context.Context) ([]model.Client, error) {
	items, _, err := load[model.Client](ctx, r, KeyClients)
	return items, err
}

func (r *Repository) Treatments(ctx context.Context) ([]model.Treatment, error) {
	items, _, err := load[model.Treatment](ctx, r, KeyTreatments)
	return items, err
}

func (r *Repository) Posts(ctx context.Context) ([]model.Post, error) {
	items, _, err := load[model.Post](ctx, r, KeyPosts)
	return items, err
}

// Update runs fn under the write lock with lazily loaded collections and commits every
// collection fn replaced or cleared in a single store commit. If fn returns an error
// nothing is written.
func (r *Repository) Update(ctx context.Context, op string, fn func(tx *Tx) error) error {
	ctx, span := tracer.Start(ctx, "storage.update", trace.WithAttributes(attribute.String("studio.op", op)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{ctx: ctx, repo: r}
	if err := fn(tx); err != nil {
		return err
	}

	writes, err := tx.writes()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode")
		return err
	}
	if len(writes) == 0 {
		return nil
	}
	if err := r.store.Commit(ctx, writes...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func load[T any](ctx context.Context, r *Repository, key string) ([]T, int64, error) {
	snap, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", key, err)
	}
	items := []T{}
	if len(snap.Data) == 0 {
		return items, snap.Version, nil
	}
	if err := json.Unmarshal(snap.Data, &items); err != nil {
		r.logger.Warn("malformed collection treated as empty", "key", key, "err", err)
		return []T{}, snap.Version, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, snap.Version, nil
}

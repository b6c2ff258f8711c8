package definitions

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists model definitions through a Bun-backed database.
type BunRepository struct {
	repo        repository.Repository[*Record]
	broadcaster *changeBroadcaster
}

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Bun-backed repository with optional
// read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := newRecordRepository(db)
	return &BunRepository{
		repo:        wrapWithCache(base, cacheService, keySerializer),
		broadcaster: newChangeBroadcaster(),
	}
}

func newRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(r *Record) string {
			return r.Name
		},
	})
}

// GetByID returns the stored definition or NotFoundError.
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// GetByName returns the definition registered under the given model name.
func (r *BunRepository) GetByName(ctx context.Context, name string) (*Record, error) {
	record, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}
	return record, nil
}

// List returns every persisted definition.
func (r *BunRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// Upsert creates or replaces the definition registered under the record's
// model name, emitting a change event.
func (r *BunRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil || record.Name == "" {
		return nil, ErrDefinitionNameRequired
	}
	now := time.Now().UTC()

	existing, err := r.repo.GetByIdentifier(ctx, record.Name)
	created := false
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		created = true
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		record.CreatedAt = now
	default:
		return nil, err
	}
	record.UpdatedAt = now

	var stored *Record
	if created {
		stored, err = r.repo.Create(ctx, record)
	} else {
		stored, err = r.repo.Update(ctx, record)
	}
	if err != nil {
		return nil, err
	}

	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(changeType, *stored))
	return stored, nil
}

// Delete removes a persisted definition and emits a change event.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return mapRepositoryError(err, id.String())
	}
	if err := r.repo.Delete(ctx, record); err != nil {
		return err
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, *record))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("definitions repository error: %w", err)
}

func wrapWithCache(base repository.Repository[*Record], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[*Record] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

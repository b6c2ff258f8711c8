package definitions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-i18n-fields/schema"
	"github.com/google/uuid"
)

// MemoryRepository stores model definitions in-memory. It is the default
// backing store and the one used by definition-time registration flows that
// never touch a database.
type MemoryRepository struct {
	mu          sync.RWMutex
	records     map[uuid.UUID]*Record
	byName      map[string]uuid.UUID
	broadcaster *changeBroadcaster
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:     make(map[uuid.UUID]*Record),
		byName:      make(map[string]uuid.UUID),
		broadcaster: newChangeBroadcaster(),
	}
}

// GetByID returns the stored definition or NotFoundError.
func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneRecord(record), nil
}

// GetByName returns the definition registered under the given model name.
func (r *MemoryRepository) GetByName(_ context.Context, name string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Key: name}
	}
	return cloneRecord(r.records[id]), nil
}

// List returns every stored definition ordered by model name.
func (r *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Record, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Upsert stores a definition keyed by model name, emitting a change event.
func (r *MemoryRepository) Upsert(_ context.Context, record *Record) (*Record, error) {
	if record == nil || record.Name == "" {
		return nil, ErrDefinitionNameRequired
	}
	now := time.Now().UTC()

	r.mu.Lock()
	id, exists := r.byName[record.Name]
	copied := cloneRecord(record)
	if exists {
		copied.ID = id
		copied.CreatedAt = r.records[id].CreatedAt
		copied.UpdatedAt = now
	} else {
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		copied.CreatedAt = now
		copied.UpdatedAt = now
	}
	r.records[copied.ID] = copied
	r.byName[copied.Name] = copied.ID
	stored := cloneRecord(copied)
	r.mu.Unlock()

	changeType := ChangeUpdated
	if !exists {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(changeType, *stored))
	return stored, nil
}

// Delete removes a stored definition and emits a change event.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	record, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return &NotFoundError{Key: id.String()}
	}
	delete(r.records, id)
	delete(r.byName, record.Name)
	removed := cloneRecord(record)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, *removed))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	copied := *record
	copied.TranslatableFields = append([]string(nil), record.TranslatableFields...)
	copied.Definition.Fields = append([]schema.Field(nil), record.Definition.Fields...)
	copied.Definition.Accessors = append([]schema.Accessor(nil), record.Definition.Accessors...)
	copied.Definition.TranslatableFields = append([]string(nil), record.Definition.TranslatableFields...)
	return &copied
}

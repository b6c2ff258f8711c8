package definitions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-i18n-fields/schema"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrDefinitionNotFound indicates the requested model definition is not registered.
var ErrDefinitionNotFound = errors.New("definitions: model definition not found")

// ErrDefinitionNameRequired indicates a record without a model name.
var ErrDefinitionNameRequired = errors.New("definitions: model name is required")

// NotFoundError describes a missing definition lookup and unwraps to
// ErrDefinitionNotFound.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return ErrDefinitionNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDefinitionNotFound.Error(), key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrDefinitionNotFound
}

// Record persists one expanded model definition: the registry plus the full
// expanded field set, so hosts can rehydrate translation metadata without
// re-running the expansion pass.
type Record struct {
	bun.BaseModel `bun:"table:model_definitions,alias:md"`

	ID                 uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	Name               string          `bun:"name,notnull,unique" json:"name"`
	Abstract           bool            `bun:"abstract,notnull,default:false" json:"abstract"`
	TranslatableFields []string        `bun:"translatable_fields,type:jsonb" json:"translatable_fields,omitempty"`
	Definition         schema.Expanded `bun:"definition,type:jsonb,notnull" json:"definition"`
	CreatedAt          time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Repository persists model definitions and emits change notifications.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByName(ctx context.Context, name string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Upsert(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates definition change events.
type ChangeType string

const (
	// ChangeCreated indicates a definition was first persisted.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated indicates a definition was updated.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted indicates a definition was removed.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports definition mutations to interested subscribers.
type ChangeEvent struct {
	Type   ChangeType
	Record Record
}

func newChangeEvent(changeType ChangeType, record Record) ChangeEvent {
	return ChangeEvent{
		Type:   changeType,
		Record: record,
	}
}

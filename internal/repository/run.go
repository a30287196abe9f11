package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/minithello/internal/config"
	"github.com/lk16/minithello/internal/services"
	"github.com/lk16/minithello/internal/solver"
)

// ErrNoRun is returned when a store does not contain a solved table yet.
var ErrNoRun = errors.New("no solve run stored")

// Run is a solved value table with the settings that produced it.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Discount  float32
	Tolerance float32
	Sweeps    int
	MaxDelta  float32
	Values    solver.ValueTable
}

// NewRun wraps the output of a solver run.
func NewRun(values solver.ValueTable, engine *solver.Engine, result solver.Result) Run {
	return Run{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Discount:  engine.Discount(),
		Tolerance: engine.Tolerance(),
		Sweeps:    result.Sweeps,
		MaxDelta:  result.MaxDelta,
		Values:    values,
	}
}

// TableStore saves solved tables and loads the latest one.
type TableStore interface {
	Save(ctx context.Context, run Run) error
	Load(ctx context.Context) (Run, error)
}

// NewTableStore returns the store named by source: "file", "postgres" or "redis".
func NewTableStore(source string, cfg *config.StoreConfig, services *services.Services) (TableStore, error) {
	switch source {
	case "file":
		return NewFileStore(cfg.TablePath), nil
	case "postgres":
		if services.Postgres == nil {
			return nil, errors.New("postgres store requires MINITHELLO_POSTGRES_URL")
		}
		return NewPostgresStore(services.Postgres), nil
	case "redis":
		if services.Redis == nil {
			return nil, errors.New("redis store requires MINITHELLO_REDIS_URL")
		}
		return NewRedisStore(services.Redis), nil
	default:
		return nil, fmt.Errorf("unknown table source: %q", source)
	}
}

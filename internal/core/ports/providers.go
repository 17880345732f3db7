package ports

import (
	"context"
	"time"

	"staffing/internal/core/domain/model/kernel"
)

// ActorProvider resolves the actor behind the current request. A request
// without a recognizable actor yields an error, never a zero Actor: handlers
// turn that into a typed authorization failure instead of crashing.
type ActorProvider interface {
	CurrentActor(ctx context.Context) (kernel.Actor, error)
}

// Clock abstracts wall time so guards and tests can control it.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

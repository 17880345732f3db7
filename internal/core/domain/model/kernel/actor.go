package kernel

import (
	"fmt"

	"staffing/internal/pkg/errs"
)

// ErrActorIsNotConstructed indicates an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"Actor must be created via NewActor")

// Role identifies which side of the marketplace an actor belongs to.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleDispatcher creates orders and runs staffing on them.
	RoleDispatcher

	// RoleWorker applies to orders and carries out assignments.
	RoleWorker
)

// getRoleStrings returns the string representation for every role value.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleDispatcher: "Dispatcher",
		RoleWorker:     "Worker",
	}
}

// Validate reports whether the role is one of the two valid marketplace roles.
func (r Role) Validate() error {
	if r != RoleDispatcher && r != RoleWorker {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// RoleFromString parses a role from its textual form, as delivered by the
// session layer. Matching is exact.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "Dispatcher":
		return RoleDispatcher, nil
	case "Worker":
		return RoleWorker, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Actor is the identity the session layer resolves for a caller: who they are
// and which marketplace role they hold. The engine never looks at anything
// else about the caller.
type Actor struct {
	id   UUID
	role Role

	guard ConstructorGuard
}

// NewActor creates an actor from a validated id and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: NewConstructorGuard()}, nil
}

// Validate reports whether the actor was constructed properly.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's marketplace role.
func (a Actor) Role() Role {
	return a.role
}

// IsDispatcher reports whether the actor is a dispatcher.
func (a Actor) IsDispatcher() bool {
	return a.role == RoleDispatcher
}

// IsWorker reports whether the actor is a worker.
func (a Actor) IsWorker() bool {
	return a.role == RoleWorker
}

// String returns "Role:id", used in logs.
func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}

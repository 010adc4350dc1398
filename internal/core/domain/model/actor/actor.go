// Package actor models the caller identity the dispatch core authorizes
// against. Identity resolution itself (tokens, sessions) is an external
// collaborator; the core only ever sees a resolved Actor.
package actor

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// Role is the closed set of caller roles the core branches on. It is
// resolved once per request and carried as a typed value; handlers never
// re-derive it from strings.
type Role string

const (
	// RoleAdmin is the back-office operator role.
	RoleAdmin Role = "admin"
	// RoleCourier is the mobile field agent role.
	RoleCourier Role = "courier"
	// RoleSite is the fixed-location attendant role.
	RoleSite Role = "site"
)

// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// RoleFromString maps a wire-level role tag onto the closed enum.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCourier, RoleSite:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// Actor is the resolved caller of an operation: an identity plus its role.
type Actor struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor from a valid identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := RoleFromString(string(role)); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's resolved role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// IsCourier reports whether the actor holds the courier role.
func (a Actor) IsCourier() bool {
	return a.role == RoleCourier
}

// IsSite reports whether the actor holds the site role.
func (a Actor) IsSite() bool {
	return a.role == RoleSite
}

package staff

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrMemberIsNotConstructed is returned when a Member was not created through
// the NewMember factory function.
var ErrMemberIsNotConstructed = errors.New("Member must be created via NewMember constructor")

// Role classifies a staff member for authorization purposes.
type Role string

const (
	// RoleOperator is a shop-floor worker assigned to individual orders.
	RoleOperator Role = "operator"

	// RoleWorkshop is an external workshop account; treated like an operator
	// for ownership checks.
	RoleWorkshop Role = "workshop"

	// RoleSupervisor oversees production and may act on any order.
	RoleSupervisor Role = "supervisor"

	// RoleAdministrator has full access; no ownership restriction applies.
	RoleAdministrator Role = "administrator"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleOperator:      {},
		RoleWorkshop:      {},
		RoleSupervisor:    {},
		RoleAdministrator: {},
	}
}

// Validate rejects role values outside the closed set.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// IsWorkshopClass reports whether the role is subject to the ownership rule.
// Operators and workshop accounts may only touch orders assigned to them.
func (r Role) IsWorkshopClass() bool {
	return r == RoleOperator || r == RoleWorkshop
}

// Member is a read-only projection of a user from the external directory:
// just enough to run ownership checks and annotate history entries.
type Member struct {
	id     kernel.UUID
	name   string
	role   Role
	teamID *kernel.UUID

	isConstructed bool
}

// NewMember creates a validated staff member projection.
func NewMember(id kernel.UUID, name string, role Role, teamID *kernel.UUID) (*Member, error) {
	member := &Member{isConstructed: true}

	if err := errors.Join(
		member.setID(id),
		member.setName(name),
		member.setRole(role),
		member.setTeamID(teamID),
	); err != nil {
		return nil, err
	}

	return member, nil
}

// Validate ensures the member came out of NewMember.
func (m *Member) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMemberIsNotConstructed
	}
	return nil
}

// ID returns the member's unique identifier.
func (m *Member) ID() kernel.UUID {
	return m.id
}

// Name returns the display name used in history notes.
func (m *Member) Name() string {
	return m.name
}

// Role returns the member's role.
func (m *Member) Role() Role {
	return m.role
}

// TeamID returns the member's team, or nil when the member has none.
func (m *Member) TeamID() *kernel.UUID {
	return m.teamID
}

func (m *Member) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Member) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *Member) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	m.role = role
	return nil
}

func (m *Member) setTeamID(teamID *kernel.UUID) error {
	if teamID == nil {
		return nil
	}
	if err := teamID.Validate(); err != nil {
		return err
	}
	m.teamID = teamID
	return nil
}

package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"
)

// StaffRepository is the read contract for workshop members and teams.
// Members are managed by a separate identity system; this side only reads
// them to enforce ownership rules and to split team bonuses.
type StaffRepository interface {
	// GetMember retrieves a member by its unique identifier.
	GetMember(ctx context.Context, id kernel.UUID) (*staff.Member, error)

	// ListTeamMembers retrieves all members of a team.
	ListTeamMembers(ctx context.Context, teamID kernel.UUID) ([]*staff.Member, error)

	// TeamMemberCount returns the current size of a team.
	TeamMemberCount(ctx context.Context, teamID kernel.UUID) (int, error)
}

// Package staffrepo reads workshop member rows maintained by the identity
// side of the system. The production core never writes them.
package staffrepo

import (
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// MemberDTO represents the database structure for workshop members.
type MemberDTO struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name   string     `gorm:"type:varchar(255);not null"`
	Role   string     `gorm:"type:varchar(32);not null"`
	TeamID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for member entities.
func (MemberDTO) TableName() string {
	return "staff_members"
}

// toDomain converts a database DTO to a member projection.
func toDomain(dto MemberDTO) (*staff.Member, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var teamID *kernel.UUID
	if dto.TeamID != nil {
		raw, teamErr := kernel.UUIDFromBytes((*dto.TeamID)[:])
		if teamErr != nil {
			return nil, teamErr
		}
		teamID = &raw
	}

	return staff.NewMember(id, dto.Name, staff.Role(dto.Role), teamID)
}

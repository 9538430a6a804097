package staffrepo

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"
	"atelier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff repository.
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// GetMember retrieves a member by ID.
func (r *GormStaffRepository) GetMember(ctx context.Context, id kernel.UUID) (*staff.Member, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MemberDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("member", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListTeamMembers retrieves all members of a team.
func (r *GormStaffRepository) ListTeamMembers(ctx context.Context, teamID kernel.UUID) ([]*staff.Member, error) {
	if err := teamID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MemberDTO
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID.Bytes()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	members := make([]*staff.Member, 0, len(dtos))
	for _, dto := range dtos {
		member, memberErr := toDomain(dto)
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, member)
	}

	return members, nil
}

// TeamMemberCount returns the current size of a team.
func (r *GormStaffRepository) TeamMemberCount(ctx context.Context, teamID kernel.UUID) (int, error) {
	if err := teamID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&MemberDTO{}).
		Where("team_id = ?", teamID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

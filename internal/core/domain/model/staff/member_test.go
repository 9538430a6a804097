package staff_test

import (
	"testing"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsWorkshopClass(t *testing.T) {
	assert.True(t, staff.RoleOperator.IsWorkshopClass())
	assert.True(t, staff.RoleWorkshop.IsWorkshopClass())
	assert.False(t, staff.RoleSupervisor.IsWorkshopClass())
	assert.False(t, staff.RoleAdministrator.IsWorkshopClass())
}

func TestRole_Validate(t *testing.T) {
	t.Run("accepts known roles", func(t *testing.T) {
		for _, role := range []staff.Role{
			staff.RoleOperator, staff.RoleWorkshop, staff.RoleSupervisor, staff.RoleAdministrator,
		} {
			require.NoError(t, role.Validate())
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		err := staff.Role("intern").Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})
}

func TestNewMember(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create valid member", func(t *testing.T) {
		teamID := kernel.NewUUID()

		member, err := staff.NewMember(validID, "Maria Costa", staff.RoleOperator, &teamID)

		require.NoError(t, err)
		require.NoError(t, member.Validate())
		assert.True(t, member.ID().IsEqual(validID))
		assert.Equal(t, "Maria Costa", member.Name())
		assert.Equal(t, staff.RoleOperator, member.Role())
		require.NotNil(t, member.TeamID())
		assert.True(t, member.TeamID().IsEqual(teamID))
	})

	t.Run("team is optional", func(t *testing.T) {
		member, err := staff.NewMember(validID, "Maria Costa", staff.RoleSupervisor, nil)

		require.NoError(t, err)
		assert.Nil(t, member.TeamID())
	})

	t.Run("should fail with blank name", func(t *testing.T) {
		_, err := staff.NewMember(validID, "", staff.RoleOperator, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("should fail with invalid role", func(t *testing.T) {
		_, err := staff.NewMember(validID, "Maria Costa", staff.Role("ghost"), nil)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var member staff.Member

		require.ErrorIs(t, member.Validate(), staff.ErrMemberIsNotConstructed)
	})
}

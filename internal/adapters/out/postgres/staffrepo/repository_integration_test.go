package staffrepo_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres/staffrepo"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// StaffRepositoryIntegrationTestSuite exercises the read-only member
// directory against a real PostgreSQL database. Rows are seeded directly
// because the production core never writes them.
type StaffRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *staffrepo.GormStaffRepository
}

func (suite *StaffRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&staffrepo.MemberDTO{}))

	suite.repository = staffrepo.NewGormStaffRepository(db)
}

func (suite *StaffRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE staff_members").Error)
}

func (suite *StaffRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StaffRepositoryIntegrationTestSuite) seedMember(name, role string, teamID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	err := suite.db.Create(&staffrepo.MemberDTO{
		ID:     id,
		Name:   name,
		Role:   role,
		TeamID: teamID,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *StaffRepositoryIntegrationTestSuite) TestGetMember() {
	rawID := suite.seedMember("Jorge Reis", "operator", nil)

	memberID, err := kernel.UUIDFromBytes(rawID[:])
	suite.Require().NoError(err)

	member, err := suite.repository.GetMember(context.Background(), memberID)

	suite.Require().NoError(err)
	suite.Equal("Jorge Reis", member.Name())
	suite.Equal(staff.RoleOperator, member.Role())
	suite.Nil(member.TeamID())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestGetMember_NotFound() {
	_, err := suite.repository.GetMember(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StaffRepositoryIntegrationTestSuite) TestListTeamMembers_SortedByName() {
	teamID := uuid.New()
	otherTeamID := uuid.New()

	suite.seedMember("Rita Prado", "workshop", &teamID)
	suite.seedMember("Jorge Reis", "operator", &teamID)
	suite.seedMember("Paula Lima", "supervisor", &otherTeamID)

	kernelTeamID, err := kernel.UUIDFromBytes(teamID[:])
	suite.Require().NoError(err)

	members, err := suite.repository.ListTeamMembers(context.Background(), kernelTeamID)

	suite.Require().NoError(err)
	suite.Require().Len(members, 2)
	suite.Equal("Jorge Reis", members[0].Name())
	suite.Equal("Rita Prado", members[1].Name())
}

func (suite *StaffRepositoryIntegrationTestSuite) TestTeamMemberCount() {
	teamID := uuid.New()
	suite.seedMember("Jorge Reis", "operator", &teamID)
	suite.seedMember("Rita Prado", "workshop", &teamID)
	suite.seedMember("Paula Lima", "supervisor", nil)

	kernelTeamID, err := kernel.UUIDFromBytes(teamID[:])
	suite.Require().NoError(err)

	count, err := suite.repository.TeamMemberCount(context.Background(), kernelTeamID)

	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *StaffRepositoryIntegrationTestSuite) TestTeamMemberCount_EmptyTeam() {
	count, err := suite.repository.TeamMemberCount(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func TestStaffRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StaffRepositoryIntegrationTestSuite))
}

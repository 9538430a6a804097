package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres/catalogrepo"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CatalogRepositoryIntegrationTestSuite exercises the reference data reads
// against a real PostgreSQL database.
type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *catalogrepo.GormCatalogRepository
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&catalogrepo.ProductDTO{}, &catalogrepo.SettingDTO{}, &catalogrepo.BonusRuleDTO{})
	suite.Require().NoError(err)

	suite.repository = catalogrepo.NewGormCatalogRepository(db)
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products, system_settings, bonus_rules").Error
	suite.Require().NoError(err)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestExists() {
	productID := uuid.New()
	err := suite.db.Create(&catalogrepo.ProductDTO{
		ID:        productID,
		Name:      "Linen Shirt",
		SalePrice: decimal.RequireFromString("25.50"),
	}).Error
	suite.Require().NoError(err)

	kernelID, err := kernel.UUIDFromBytes(productID[:])
	suite.Require().NoError(err)

	exists, err := suite.repository.Exists(context.Background(), kernelID)

	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestExists_UnknownProduct() {
	exists, err := suite.repository.Exists(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestSalePrice() {
	productID := uuid.New()
	err := suite.db.Create(&catalogrepo.ProductDTO{
		ID:        productID,
		Name:      "Linen Shirt",
		SalePrice: decimal.RequireFromString("25.50"),
	}).Error
	suite.Require().NoError(err)

	kernelID, err := kernel.UUIDFromBytes(productID[:])
	suite.Require().NoError(err)

	price, err := suite.repository.SalePrice(context.Background(), kernelID)

	suite.Require().NoError(err)
	suite.Equal("25.50", price.StringFixed(2))
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestSalePrice_UnknownProduct_ReturnsZero() {
	price, err := suite.repository.SalePrice(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.True(price.IsZero())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestHourlyRate() {
	err := suite.db.Create(&catalogrepo.SettingDTO{Key: "hourly_rate", Value: "62.5"}).Error
	suite.Require().NoError(err)

	rate, err := suite.repository.HourlyRate(context.Background())

	suite.Require().NoError(err)
	suite.Equal("62.50", rate.StringFixed(2))
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestHourlyRate_MissingSetting_ReturnsZero() {
	rate, err := suite.repository.HourlyRate(context.Background())

	suite.Require().NoError(err)
	suite.True(rate.IsZero())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestHourlyRate_UnparseableSetting_ReturnsZero() {
	err := suite.db.Create(&catalogrepo.SettingDTO{Key: "hourly_rate", Value: "not a number"}).Error
	suite.Require().NoError(err)

	rate, err := suite.repository.HourlyRate(context.Background())

	suite.Require().NoError(err)
	suite.True(rate.IsZero())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestActiveBonusRule_ReturnsNewestActive() {
	now := time.Now().UTC()

	suite.createBonusRule("80.00", true, now.Add(-48*time.Hour))
	suite.createBonusRule("100.00", true, now)
	suite.createBonusRule("120.00", false, now.Add(time.Hour))

	rule, err := suite.repository.ActiveBonusRule(context.Background())

	suite.Require().NoError(err)
	suite.Equal("100.00", rule.ProductivityPercentage.StringFixed(2))
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestActiveBonusRule_NoneActive_ReturnsNotFound() {
	suite.createBonusRule("80.00", false, time.Now().UTC())

	_, err := suite.repository.ActiveBonusRule(context.Background())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) createBonusRule(
	productivity string,
	active bool,
	updatedAt time.Time,
) {
	err := suite.db.Create(&catalogrepo.BonusRuleDTO{
		ID:                      uuid.New(),
		ProductivityPercentage:  decimal.RequireFromString(productivity),
		DeadlineBonusPercentage: decimal.RequireFromString("20.00"),
		DefectLimitPercentage:   decimal.RequireFromString("5.00"),
		DelayPenaltyPercentage:  decimal.RequireFromString("25.00"),
		Active:                  active,
		UpdatedAt:               updatedAt,
	}).Error
	suite.Require().NoError(err)
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}

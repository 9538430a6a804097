package catalogrepo

import (
	"context"
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// hourlyRateKey is the settings row holding the workshop hourly rate.
const hourlyRateKey = "hourly_rate"

// GormCatalogRepository implements ProductCatalog, SystemConfig, and
// BonusRuleSource using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Exists reports whether the product is present in the catalog.
func (r *GormCatalogRepository) Exists(ctx context.Context, productID kernel.UUID) (bool, error) {
	if err := productID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// SalePrice returns the configured sale price for a product. A product
// without a price row yields decimal.Zero, which skips margin calculation.
func (r *GormCatalogRepository) SalePrice(ctx context.Context, productID kernel.UUID) (decimal.Decimal, error) {
	if err := productID.Validate(); err != nil {
		return decimal.Zero, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return dto.SalePrice, nil
}

// HourlyRate returns the configured workshop hourly rate. A missing or
// unparseable setting yields decimal.Zero so callers fall back to the
// engine default.
func (r *GormCatalogRepository) HourlyRate(ctx context.Context) (decimal.Decimal, error) {
	var dto SettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", hourlyRateKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(dto.Value)
	if err != nil {
		return decimal.Zero, nil
	}

	return rate, nil
}

// ActiveBonusRule returns the currently active bonus configuration.
func (r *GormCatalogRepository) ActiveBonusRule(ctx context.Context) (services.BonusRule, error) {
	var dto BonusRuleDTO
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("updated_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.BonusRule{}, errs.NewObjectNotFoundError("bonusRule", "active")
		}
		return services.BonusRule{}, err
	}

	return services.BonusRule{
		ProductivityPercentage:  dto.ProductivityPercentage,
		DeadlineBonusPercentage: dto.DeadlineBonusPercentage,
		DefectLimitPercentage:   dto.DefectLimitPercentage,
		DelayPenaltyPercentage:  dto.DelayPenaltyPercentage,
	}, nil
}

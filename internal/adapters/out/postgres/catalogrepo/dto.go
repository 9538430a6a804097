// Package catalogrepo reads reference data: the product catalog, tunable
// system settings, and bonus rule configurations.
package catalogrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	SalePrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// SettingDTO represents one key-value system setting.
type SettingDTO struct {
	Key   string `gorm:"type:varchar(64);primaryKey"`
	Value string `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for settings.
func (SettingDTO) TableName() string {
	return "system_settings"
}

// BonusRuleDTO represents one bonus rule configuration. At most one rule is
// active at a time; older rules are kept for audit.
type BonusRuleDTO struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductivityPercentage  decimal.Decimal `gorm:"type:numeric(8,2)"`
	DeadlineBonusPercentage decimal.Decimal `gorm:"type:numeric(8,2)"`
	DefectLimitPercentage   decimal.Decimal `gorm:"type:numeric(8,2)"`
	DelayPenaltyPercentage  decimal.Decimal `gorm:"type:numeric(8,2)"`
	Active                  bool            `gorm:"not null;index"`
	UpdatedAt               time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for bonus rules.
func (BonusRuleDTO) TableName() string {
	return "bonus_rules"
}

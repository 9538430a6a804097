package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// ProductCatalog exposes the product reference data order registration and
// the cost engine need.
type ProductCatalog interface {
	// Exists reports whether the product is present in the catalog.
	Exists(ctx context.Context, productID kernel.UUID) (bool, error)

	// SalePrice returns the configured sale price for a product, or
	// decimal.Zero when the product has no price yet.
	SalePrice(ctx context.Context, productID kernel.UUID) (decimal.Decimal, error)
}

// SystemConfig exposes tunable operational settings.
type SystemConfig interface {
	// HourlyRate returns the configured workshop hourly rate, or
	// decimal.Zero when unset. Callers fall back to the engine default.
	HourlyRate(ctx context.Context) (decimal.Decimal, error)
}

// BonusRuleSource provides the active bonus configuration.
type BonusRuleSource interface {
	ActiveBonusRule(ctx context.Context) (services.BonusRule, error)
}

// DefectRegistry exposes quality inspection results recorded per order.
type DefectRegistry interface {
	// DefectCount returns the number of defective units registered for
	// an order, 0 when the order was never inspected.
	DefectCount(ctx context.Context, orderID kernel.UUID) (int, error)
}

package services

import (
	"sort"
	"time"

	"atelier/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DefaultHourlyRate is the operational cost rate used when the system
// configuration cannot be read. Production flow must never block on a
// missing financial setting.
var DefaultHourlyRate = decimal.NewFromFloat(45.0)

// minimumEffectiveHours is the hard floor applied to the fallback window so
// an order never comes out with a zero-cost artifact.
var minimumEffectiveHours = decimal.NewFromFloat(0.1)

const secondsPerHour = 3600

// Costing is the result of the final cost calculation for one order.
type Costing struct {
	EffectiveHours decimal.Decimal
	TotalCost      decimal.Decimal
	UnitCost       decimal.Decimal
	ProfitMargin   decimal.Decimal
}

// CostEngine derives labor cost and profit margin from an order's history.
// It runs exactly once per order, synchronously, at the moment the order
// transitions into Completed.
type CostEngine struct{}

// NewCostEngine creates a cost engine.
func NewCostEngine() CostEngine {
	return CostEngine{}
}

// CalculateFinalOrderCost replays the order's history to measure effective
// working hours and derives total cost, unit cost, and profit margin.
//
// Effective hours count only time spent in InProduction: an interval opens
// when an entry's new status is InProduction and closes when a later entry
// leaves it; an interval still open at the end of the trail closes at the
// order's completion time. Paused and Stopped intervals are never counted.
//
// When the history yields no usable time, the window from the production
// start (or creation) to completion is used instead, floored at 0.1 hours.
// An hourly rate that is not positive falls back to DefaultHourlyRate, and a
// missing or non-positive sale price yields a zero margin: derived-data gaps
// degrade to safe defaults rather than failing the completing transition.
//
// A negative profit margin is intentional; it signals a loss-making order.
func (CostEngine) CalculateFinalOrderCost(
	o *order.ProductionOrder,
	history []order.HistoryEntry,
	hourlyRate decimal.Decimal,
	salePrice decimal.Decimal,
	now time.Time,
) (Costing, error) {
	if err := o.Validate(); err != nil {
		return Costing{}, err
	}

	completedAt := now
	if o.CompletedAt() != nil {
		completedAt = *o.CompletedAt()
	}

	effectiveHours := effectiveHours(history, completedAt)
	if effectiveHours.LessThanOrEqual(decimal.Zero) {
		effectiveHours = fallbackHours(o, completedAt)
	}

	if hourlyRate.LessThanOrEqual(decimal.Zero) {
		hourlyRate = DefaultHourlyRate
	}

	totalCost := effectiveHours.Mul(hourlyRate).Round(2)
	unitCost := unitCostFor(totalCost, o.Quantity())

	profitMargin := decimal.Zero
	if salePrice.GreaterThan(decimal.Zero) {
		profitMargin = salePrice.Sub(unitCost).
			Div(salePrice).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return Costing{
		EffectiveHours: effectiveHours,
		TotalCost:      totalCost,
		UnitCost:       unitCost,
		ProfitMargin:   profitMargin,
	}, nil
}

// unitCostFor divides the total cost across produced units. A quantity
// below 1 is treated as a single unit so the division never blows up.
func unitCostFor(totalCost decimal.Decimal, quantity int) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return totalCost.Div(decimal.NewFromInt(int64(quantity))).Round(2)
}

// effectiveHours scans the history sorted by time and sums the closed
// InProduction intervals, closing a still-open one at completedAt.
func effectiveHours(history []order.HistoryEntry, completedAt time.Time) decimal.Decimal {
	entries := make([]order.HistoryEntry, len(history))
	copy(entries, history)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt().Before(entries[j].RecordedAt())
	})

	var totalSeconds float64
	var openedAt *time.Time

	for _, entry := range entries {
		leavingProduction := entry.PreviousStatus() != nil &&
			*entry.PreviousStatus() == order.InProduction &&
			entry.NewStatus() != order.InProduction

		if leavingProduction && openedAt != nil {
			totalSeconds += entry.RecordedAt().Sub(*openedAt).Seconds()
			openedAt = nil
		}

		if entry.NewStatus() == order.InProduction && openedAt == nil {
			recordedAt := entry.RecordedAt()
			openedAt = &recordedAt
		}
	}

	if openedAt != nil {
		totalSeconds += completedAt.Sub(*openedAt).Seconds()
	}

	return decimal.NewFromFloat(totalSeconds).Div(decimal.NewFromInt(secondsPerHour))
}

// fallbackHours measures completion minus production start (or creation when
// the order never recorded a start), floored at minimumEffectiveHours.
func fallbackHours(o *order.ProductionOrder, completedAt time.Time) decimal.Decimal {
	start := o.CreatedAt()
	if o.StartedAt() != nil {
		start = *o.StartedAt()
	}

	hours := decimal.NewFromFloat(completedAt.Sub(start).Seconds()).
		Div(decimal.NewFromInt(secondsPerHour))
	if hours.LessThan(minimumEffectiveHours) {
		return minimumEffectiveHours
	}
	return hours
}

package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// onTimeFloor is the on-time ratio below which the delay penalty applies.
var onTimeFloor = decimal.NewFromFloat(0.5)

// BonusRule is the active bonus configuration snapshot. It is supplied as a
// value to every calculation, never read from ambient state.
type BonusRule struct {
	ProductivityPercentage  decimal.Decimal
	DeadlineBonusPercentage decimal.Decimal
	DefectLimitPercentage   decimal.Decimal
	DelayPenaltyPercentage  decimal.Decimal
}

// BonusOrderInput is one completed order as the bonus engine sees it:
// quantities, deadline adherence, labor cost, and the defect count supplied
// by the external QA registry.
type BonusOrderInput struct {
	Quantity              int
	CompletedAt           time.Time
	EstimatedCompletionAt time.Time
	LaborCost             decimal.Decimal
	Defects               int
}

// BonusReport is the outcome of a bonus calculation over a date range.
// All percentage fields are rounded to 2 decimals. A report over zero
// qualifying orders is valid and all-zero, not an error.
type BonusReport struct {
	CompletedOrders int
	TotalProduced   int
	OnTimeOrders    int
	OnTimeRatio     decimal.Decimal
	TotalDefects    int
	DefectRatio     decimal.Decimal

	ProductivityBonus    decimal.Decimal
	DeadlineBonus        decimal.Decimal
	FinalBonusPercentage decimal.Decimal

	// BonusBase is the summed labor cost of the qualifying orders;
	// BonusAmount applies the final percentage to it.
	BonusBase   decimal.Decimal
	BonusAmount decimal.Decimal
}

// BonusEngine turns a set of completed orders into a productivity bonus.
//
// The productivity component is flat: it is awarded in full once any
// qualifying order exists. The deadline component scales with the on-time
// ratio. The quality gate overrides everything: a defect ratio above the
// rule's limit zeroes the final bonus unconditionally. Below the gate, an
// on-time ratio under 50% subtracts the delay penalty. The final percentage
// never goes below zero.
type BonusEngine struct{}

// NewBonusEngine creates a bonus engine.
func NewBonusEngine() BonusEngine {
	return BonusEngine{}
}

// Calculate produces the bonus report for the given rule and orders.
func (BonusEngine) Calculate(rule BonusRule, orders []BonusOrderInput) BonusReport {
	report := BonusReport{
		OnTimeRatio:          decimal.Zero,
		DefectRatio:          decimal.Zero,
		ProductivityBonus:    decimal.Zero,
		DeadlineBonus:        decimal.Zero,
		FinalBonusPercentage: decimal.Zero,
		BonusBase:            decimal.Zero,
		BonusAmount:          decimal.Zero,
	}
	if len(orders) == 0 {
		return report
	}

	for _, o := range orders {
		report.CompletedOrders++
		report.TotalProduced += o.Quantity
		report.TotalDefects += o.Defects
		report.BonusBase = report.BonusBase.Add(o.LaborCost)
		if !o.CompletedAt.After(o.EstimatedCompletionAt) {
			report.OnTimeOrders++
		}
	}

	onTimeRatio := decimal.NewFromInt(int64(report.OnTimeOrders)).
		Div(decimal.NewFromInt(int64(report.CompletedOrders)))

	defectRatio := decimal.Zero
	if report.TotalProduced > 0 {
		defectRatio = decimal.NewFromInt(int64(report.TotalDefects)).
			Div(decimal.NewFromInt(int64(report.TotalProduced))).
			Mul(decimal.NewFromInt(100))
	}

	productivityBonus := rule.ProductivityPercentage
	deadlineBonus := onTimeRatio.Mul(rule.DeadlineBonusPercentage)
	finalBonus := productivityBonus.Add(deadlineBonus)

	switch {
	case defectRatio.GreaterThan(rule.DefectLimitPercentage):
		// Quality gate: too many defects void the whole bonus.
		finalBonus = decimal.Zero
	case onTimeRatio.LessThan(onTimeFloor):
		finalBonus = finalBonus.Sub(rule.DelayPenaltyPercentage)
	}

	if finalBonus.IsNegative() {
		finalBonus = decimal.Zero
	}

	report.OnTimeRatio = onTimeRatio.Round(2)
	report.DefectRatio = defectRatio.Round(2)
	report.ProductivityBonus = productivityBonus.Round(2)
	report.DeadlineBonus = deadlineBonus.Round(2)
	report.FinalBonusPercentage = finalBonus.Round(2)
	report.BonusBase = report.BonusBase.Round(2)
	report.BonusAmount = finalBonus.
		Div(decimal.NewFromInt(100)).
		Mul(report.BonusBase).
		Round(2)

	return report
}

// TeamShare returns one member's cut of a team report: the final percentage
// split evenly across the current membership. The split is flat regardless
// of each order's quantity or defects; that mirrors the configured payout
// policy. A team with no members yields zero.
func (BonusEngine) TeamShare(teamReport BonusReport, memberCount int) decimal.Decimal {
	if memberCount <= 0 {
		return decimal.Zero
	}
	return teamReport.FinalBonusPercentage.
		Div(decimal.NewFromInt(int64(memberCount))).
		Round(2)
}

// TeamShareAmount splits the team's monetary bonus the same way TeamShare
// splits the percentage.
func (BonusEngine) TeamShareAmount(teamReport BonusReport, memberCount int) decimal.Decimal {
	if memberCount <= 0 {
		return decimal.Zero
	}
	return teamReport.BonusAmount.
		Div(decimal.NewFromInt(int64(memberCount))).
		Round(2)
}

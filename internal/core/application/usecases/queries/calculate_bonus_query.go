package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCalculateBonusQueryIsNotConstructed = errors.New(
	"CalculateBonusQuery must be created via a NewCalculate*BonusQuery constructor",
)

// BonusScope selects whose completed orders feed the bonus calculation.
type BonusScope int

const (
	BonusScopeUnknown BonusScope = iota
	BonusScopeTeam
	BonusScopeUser
)

// CalculateBonusQuery requests a bonus report for a team or a single member
// over a date range.
type CalculateBonusQuery struct { //nolint:recvcheck //using for validation
	scope    BonusScope
	targetID kernel.UUID
	from     time.Time
	to       time.Time

	guard guard.ConstructorGuard
}

// NewCalculateTeamBonusQuery creates a bonus query scoped to a team.
func NewCalculateTeamBonusQuery(teamID kernel.UUID, from, to time.Time) (CalculateBonusQuery, error) {
	return newCalculateBonusQuery(BonusScopeTeam, teamID, from, to)
}

// NewCalculateUserBonusQuery creates a bonus query scoped to one member.
func NewCalculateUserBonusQuery(userID kernel.UUID, from, to time.Time) (CalculateBonusQuery, error) {
	return newCalculateBonusQuery(BonusScopeUser, userID, from, to)
}

func newCalculateBonusQuery(
	scope BonusScope,
	targetID kernel.UUID,
	from, to time.Time,
) (CalculateBonusQuery, error) {
	if err := targetID.Validate(); err != nil {
		return CalculateBonusQuery{}, err
	}
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return CalculateBonusQuery{}, errs.NewValueIsInvalidError("period")
	}

	return CalculateBonusQuery{
		scope:    scope,
		targetID: targetID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q CalculateBonusQuery) Validate() error {
	return q.guard.Validate(ErrCalculateBonusQueryIsNotConstructed)
}

// Scope returns whether the query covers a team or a single member.
func (q CalculateBonusQuery) Scope() BonusScope {
	return q.scope
}

// TargetID returns the team or member the query covers.
func (q CalculateBonusQuery) TargetID() kernel.UUID {
	return q.targetID
}

// From returns the inclusive start of the period.
func (q CalculateBonusQuery) From() time.Time {
	return q.from
}

// To returns the inclusive end of the period.
func (q CalculateBonusQuery) To() time.Time {
	return q.to
}

// CalculateBonusQueryResponse is the bonus report for the requested scope.
// MemberShare carries the even per-member split for team scope and equals
// FinalBonusPercentage for user scope.
type CalculateBonusQueryResponse struct {
	CompletedOrders int
	TotalProduced   int
	OnTimeOrders    int
	OnTimeRatio     decimal.Decimal
	TotalDefects    int
	DefectRatio     decimal.Decimal

	ProductivityBonus    decimal.Decimal
	DeadlineBonus        decimal.Decimal
	FinalBonusPercentage decimal.Decimal
	BonusAmount          decimal.Decimal
	MemberShare          decimal.Decimal
}

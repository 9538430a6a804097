package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery retrieves active orders that have passed their
// promised completion date. The overdue watch job runs it periodically.
type GetOverdueOrdersQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for orders overdue as of the
// given moment.
func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	if asOf.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueOrdersQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// AsOf returns the moment overdueness is measured against.
func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}

// GetOverdueOrdersQueryResponse is one overdue order.
type GetOverdueOrdersQueryResponse struct {
	ID                    kernel.UUID
	LotCode               string
	ClientName            string
	Stage                 string
	Status                string
	EstimatedCompletionAt time.Time
}

// Package queries contains the read operations of the production core.
// Board queries read projection rows straight from the database; the bonus
// query composes repositories with the domain bonus engine.
package queries

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves all orders still moving through the
// workshop, for the production board.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the active order board.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one row of the production board.
type GetActiveOrdersQueryResponse struct {
	ID                    kernel.UUID
	LotCode               string
	Quantity              int
	Size                  string
	ClientName            string
	Stage                 string
	Status                string
	EstimatedCompletionAt time.Time
}

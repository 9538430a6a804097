// Package orderrepo implements order persistence: mapping between the
// production order aggregate (plus its history trail) and the relational
// tables that store them.
package orderrepo

import (
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The unique index on the lot code is the cross-process
// backstop of the allocator.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LotCode               string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	ProductID             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity              int        `gorm:"type:int;not null"`
	Size                  string     `gorm:"type:varchar(16);not null"`
	ClientName            string     `gorm:"type:varchar(255)"`
	Stage                 int        `gorm:"type:smallint;not null;index"`
	Status                int        `gorm:"type:smallint;not null;index"`
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             time.Time  `gorm:"not null"`
	EstimatedCompletionAt time.Time  `gorm:"not null;index"`
	StartedAt             *time.Time
	CompletedAt           *time.Time `gorm:"index"`
	TotalCost             decimal.Decimal `gorm:"type:numeric(12,2)"`
	UnitCost              decimal.Decimal `gorm:"type:numeric(12,2)"`
	ProfitMargin          decimal.Decimal `gorm:"type:numeric(8,2)"`
	AssignedUserID        *uuid.UUID `gorm:"type:uuid;index"`
	AssignedTeamID        *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "production_orders"
}

// HistoryEntryDTO represents one row of an order's append-only trail.
type HistoryEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStage  *int      `gorm:"type:smallint"`
	NewStage       int       `gorm:"type:smallint;not null"`
	PreviousStatus *int      `gorm:"type:smallint"`
	NewStatus      int       `gorm:"type:smallint;not null"`
	ActingUserID   uuid.UUID `gorm:"type:uuid;not null"`
	Note           string    `gorm:"type:text"`
	RecordedAt     time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.ProductionOrder) OrderDTO {
	var assignedUserID *uuid.UUID
	if id := aggregate.AssignedUserID(); id != nil {
		raw := id.Bytes()
		assignedUserID = &raw
	}

	var assignedTeamID *uuid.UUID
	if id := aggregate.AssignedTeamID(); id != nil {
		raw := id.Bytes()
		assignedTeamID = &raw
	}

	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		LotCode:               aggregate.LotCode().String(),
		ProductID:             aggregate.ProductID().Bytes(),
		Quantity:              aggregate.Quantity(),
		Size:                  aggregate.Size(),
		ClientName:            aggregate.ClientName(),
		Stage:                 int(aggregate.Stage()),
		Status:                int(aggregate.Status()),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		EstimatedCompletionAt: aggregate.EstimatedCompletionAt(),
		StartedAt:             aggregate.StartedAt(),
		CompletedAt:           aggregate.CompletedAt(),
		TotalCost:             aggregate.TotalCost(),
		UnitCost:              aggregate.UnitCost(),
		ProfitMargin:          aggregate.ProfitMargin(),
		AssignedUserID:        assignedUserID,
		AssignedTeamID:        assignedTeamID,
	}
}

// toDomain converts a database DTO to an order aggregate using
// RestoreProductionOrder.
func toDomain(dto OrderDTO) (*order.ProductionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lotCode, err := kernel.ParseLotCode(dto.LotCode)
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	assignedUserID, err := optionalUUID(dto.AssignedUserID)
	if err != nil {
		return nil, err
	}

	assignedTeamID, err := optionalUUID(dto.AssignedTeamID)
	if err != nil {
		return nil, err
	}

	return order.RestoreProductionOrder(
		id,
		lotCode,
		productID,
		dto.Quantity,
		dto.Size,
		dto.ClientName,
		order.Stage(dto.Stage),
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.EstimatedCompletionAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.TotalCost,
		dto.UnitCost,
		dto.ProfitMargin,
		assignedUserID,
		assignedTeamID,
	)
}

// historyFromDomain converts a history entry to its database representation.
func historyFromDomain(entry order.HistoryEntry) HistoryEntryDTO {
	var previousStage *int
	if s := entry.PreviousStage(); s != nil {
		raw := int(*s)
		previousStage = &raw
	}

	var previousStatus *int
	if s := entry.PreviousStatus(); s != nil {
		raw := int(*s)
		previousStatus = &raw
	}

	return HistoryEntryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		PreviousStage:  previousStage,
		NewStage:       int(entry.NewStage()),
		PreviousStatus: previousStatus,
		NewStatus:      int(entry.NewStatus()),
		ActingUserID:   entry.ActingUserID().Bytes(),
		Note:           entry.Note(),
		RecordedAt:     entry.RecordedAt(),
	}
}

// historyToDomain converts a database DTO to a history entry.
func historyToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	actingUserID, err := kernel.UUIDFromBytes(dto.ActingUserID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	var previousStage *order.Stage
	if dto.PreviousStage != nil {
		stage := order.Stage(*dto.PreviousStage)
		previousStage = &stage
	}

	var previousStatus *order.Status
	if dto.PreviousStatus != nil {
		status := order.Status(*dto.PreviousStatus)
		previousStatus = &status
	}

	return order.RestoreHistoryEntry(
		id,
		orderID,
		previousStage,
		order.Stage(dto.NewStage),
		previousStatus,
		order.Status(dto.NewStatus),
		actingUserID,
		dto.Note,
		dto.RecordedAt,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}

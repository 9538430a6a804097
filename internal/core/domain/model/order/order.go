package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/staff"
	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when a ProductionOrder instance was
	// not created through NewProductionOrder or RestoreProductionOrder.
	ErrOrderIsNotConstructed = errors.New(
		"ProductionOrder must be created via NewProductionOrder or RestoreProductionOrder",
	)

	// ErrOrderAlreadyCompleted rejects any transition on a completed order,
	// including a repeated completion request.
	ErrOrderAlreadyCompleted = errors.New("order is already completed")

	// ErrNoFurtherStage rejects AdvanceStage on an order already at Packaging;
	// the caller must complete the order through a status update instead.
	ErrNoFurtherStage = errors.New(
		"order is already at the final stage, complete it via a status update",
	)

	// ErrCompletionRequiresPackaging rejects completing an order whose stage
	// is not Packaging.
	ErrCompletionRequiresPackaging = errors.New(
		"order can only be completed at the Packaging stage",
	)

	// ErrRollbackNoteRequired rejects an undocumented backward stage move.
	ErrRollbackNoteRequired = errors.New(
		"a note is required when moving an order back to an earlier stage",
	)

	// ErrCostingRequiresCompletion rejects applying final costs to an order
	// that has not completed.
	ErrCostingRequiresCompletion = errors.New(
		"final costs can only be applied to a completed order",
	)
)

// ProductionOrder is the aggregate root for one garment production order.
// It is the mutable projection of "where the order is right now"; the full
// story lives in the order's HistoryEntry sequence, and currentStage and
// currentStatus always equal the newest entry's newStage and newStatus.
//
// Invariants:
//   - Quantity is positive; size is non-blank
//   - Stage transitions follow the pipeline rules (see Stage)
//   - Completed is terminal and only reachable from Packaging
//   - Operator/workshop users may only act on orders assigned to them
//
// Every successful mutation returns the HistoryEntry documenting it; the
// caller persists the order update and the entry in one transaction.
type ProductionOrder struct {
	id      kernel.UUID
	lotCode kernel.LotCode

	productID  kernel.UUID
	quantity   int
	size       string
	clientName string

	stage  Stage
	status Status

	createdAt             time.Time
	updatedAt             time.Time
	estimatedCompletionAt time.Time
	startedAt             *time.Time
	completedAt           *time.Time

	totalCost    decimal.Decimal
	unitCost     decimal.Decimal
	profitMargin decimal.Decimal

	assignedUserID *kernel.UUID
	assignedTeamID *kernel.UUID

	isConstructed bool
}

// NewProductionOrder creates an order at the start of the pipeline:
// stage Cutting, status InProduction. The caller is responsible for having
// resolved the product reference and allocated the lot code beforehand.
//
// Validation failures (non-positive quantity, completion date not in the
// future, blank size) reject the order before anything is written.
func NewProductionOrder(
	id kernel.UUID,
	lotCode kernel.LotCode,
	productID kernel.UUID,
	quantity int,
	size string,
	estimatedCompletionAt time.Time,
	clientName string,
	assignedUserID *kernel.UUID,
	assignedTeamID *kernel.UUID,
	now time.Time,
) (*ProductionOrder, error) {
	o := &ProductionOrder{
		stage:         Cutting,
		status:        InProduction,
		clientName:    clientName,
		createdAt:     now,
		updatedAt:     now,
		totalCost:     decimal.Zero,
		unitCost:      decimal.Zero,
		profitMargin:  decimal.Zero,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLotCode(lotCode),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setSize(size),
		o.setEstimatedCompletionAt(estimatedCompletionAt, now),
		o.setAssignedUserID(assignedUserID),
		o.setAssignedTeamID(assignedTeamID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreProductionOrder rebuilds an order from persistence. Transition rules
// are not re-run; field-level validity is still checked.
func RestoreProductionOrder(
	id kernel.UUID,
	lotCode kernel.LotCode,
	productID kernel.UUID,
	quantity int,
	size string,
	clientName string,
	stage Stage,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	estimatedCompletionAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
	totalCost decimal.Decimal,
	unitCost decimal.Decimal,
	profitMargin decimal.Decimal,
	assignedUserID *kernel.UUID,
	assignedTeamID *kernel.UUID,
) (*ProductionOrder, error) {
	o := &ProductionOrder{
		clientName:            clientName,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		estimatedCompletionAt: estimatedCompletionAt,
		startedAt:             startedAt,
		completedAt:           completedAt,
		totalCost:             totalCost,
		unitCost:              unitCost,
		profitMargin:          profitMargin,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLotCode(lotCode),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setSize(size),
		stage.Validate(),
		status.Validate(),
		o.setAssignedUserID(assignedUserID),
		o.setAssignedTeamID(assignedTeamID),
	); err != nil {
		return nil, err
	}

	o.stage = stage
	o.status = status
	return o, nil
}

// Validate ensures the order came out of a constructor.
func (o *ProductionOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *ProductionOrder) IsEqual(other *ProductionOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *ProductionOrder) ID() kernel.UUID { return o.id }

// LotCode returns the human-readable order code.
func (o *ProductionOrder) LotCode() kernel.LotCode { return o.lotCode }

// ProductID returns the produced product's identifier.
func (o *ProductionOrder) ProductID() kernel.UUID { return o.productID }

// Quantity returns the number of units to produce.
func (o *ProductionOrder) Quantity() int { return o.quantity }

// Size returns the garment size of the order.
func (o *ProductionOrder) Size() string { return o.size }

// ClientName returns the optional client the order is produced for.
func (o *ProductionOrder) ClientName() string { return o.clientName }

// Stage returns the current pipeline stage.
func (o *ProductionOrder) Stage() Stage { return o.stage }

// Status returns the current operational status.
func (o *ProductionOrder) Status() Status { return o.status }

// CreatedAt returns when the order was registered.
func (o *ProductionOrder) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns when the order last changed.
func (o *ProductionOrder) UpdatedAt() time.Time { return o.updatedAt }

// EstimatedCompletionAt returns the promised completion date.
func (o *ProductionOrder) EstimatedCompletionAt() time.Time { return o.estimatedCompletionAt }

// StartedAt returns when production first started, nil before that.
func (o *ProductionOrder) StartedAt() *time.Time { return o.startedAt }

// CompletedAt returns when the order was completed, nil before that.
func (o *ProductionOrder) CompletedAt() *time.Time { return o.completedAt }

// TotalCost returns the derived total labor cost, zero until completion.
func (o *ProductionOrder) TotalCost() decimal.Decimal { return o.totalCost }

// UnitCost returns the derived per-unit cost, zero until completion.
func (o *ProductionOrder) UnitCost() decimal.Decimal { return o.unitCost }

// ProfitMargin returns the derived margin percentage. Negative means the
// order was produced at a loss.
func (o *ProductionOrder) ProfitMargin() decimal.Decimal { return o.profitMargin }

// AssignedUserID returns the individually assigned user, if any.
func (o *ProductionOrder) AssignedUserID() *kernel.UUID { return o.assignedUserID }

// AssignedTeamID returns the assigned team, if any.
func (o *ProductionOrder) AssignedTeamID() *kernel.UUID { return o.assignedTeamID }

// IsCompleted reports whether the order has reached its terminal status.
func (o *ProductionOrder) IsCompleted() bool {
	return o.status.IsTerminal()
}

// CreationEntry builds the first history entry for a newly created order.
// PreviousStage and PreviousStatus are nil, marking the start of the trail.
func (o *ProductionOrder) CreationEntry(actingUserID kernel.UUID) (HistoryEntry, error) {
	if err := actingUserID.Validate(); err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		id:            kernel.NewUUID(),
		orderID:       o.id,
		newStage:      o.stage,
		newStatus:     o.status,
		actingUserID:  actingUserID,
		note:          "order created",
		recordedAt:    o.createdAt,
		isConstructed: true,
	}, nil
}

// AdvanceStage moves the order exactly one stage forward and resets the
// status to InProduction. Fails on a completed order, on an order already at
// Packaging, and for workshop-class actors not assigned to the order.
func (o *ProductionOrder) AdvanceStage(actor *staff.Member, now time.Time) (HistoryEntry, error) {
	if err := o.guardMutable(actor, "advance stage"); err != nil {
		return HistoryEntry{}, err
	}

	next, err := o.stage.Next()
	if err != nil {
		return HistoryEntry{}, err
	}

	return o.applyTransition(next, InProduction, actor.ID(),
		fmt.Sprintf("stage advanced to %s", next), now), nil
}

// ChangeStage moves the order to an arbitrary stage, forward or backward.
// A backward move must carry a non-empty note documenting the rollback.
// The status resets to InProduction.
func (o *ProductionOrder) ChangeStage(
	actor *staff.Member,
	newStage Stage,
	note string,
	now time.Time,
) (HistoryEntry, error) {
	if err := o.guardMutable(actor, "change stage"); err != nil {
		return HistoryEntry{}, err
	}
	if err := newStage.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if newStage.Precedes(o.stage) && strings.TrimSpace(note) == "" {
		return HistoryEntry{}, ErrRollbackNoteRequired
	}

	return o.applyTransition(newStage, InProduction, actor.ID(), note, now), nil
}

// UpdateStatus changes the operational status. Completed is only accepted at
// the Packaging stage, and a completed order rejects every further call. The
// first move into InProduction stamps StartedAt; moving into Completed stamps
// CompletedAt. The caller runs the final cost calculation after a completing
// transition, before committing.
func (o *ProductionOrder) UpdateStatus(
	actor *staff.Member,
	newStatus Status,
	note string,
	now time.Time,
) (HistoryEntry, error) {
	if err := o.guardMutable(actor, "update status"); err != nil {
		return HistoryEntry{}, err
	}
	if err := newStatus.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if newStatus == Completed && o.stage != Packaging {
		return HistoryEntry{}, ErrCompletionRequiresPackaging
	}

	return o.applyTransition(o.stage, newStatus, actor.ID(), note, now), nil
}

// AssignTo assigns the order to a workshop-class member and records a
// stage-preserving history entry noting the reassignment.
func (o *ProductionOrder) AssignTo(member *staff.Member, now time.Time) (HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := member.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if !member.Role().IsWorkshopClass() {
		return HistoryEntry{}, errs.NewValueIsInvalidErrorWithCause(
			"assignee",
			fmt.Errorf("%s role %q cannot be assigned production work", member.Name(), member.Role()),
		)
	}

	memberID := member.ID()
	o.assignedUserID = &memberID

	return o.applyTransition(o.stage, o.status, member.ID(),
		fmt.Sprintf("order assigned to %s", member.Name()), now), nil
}

// ApplyCosting stores the derived cost figures produced by the cost engine.
// Only a completed order carries final costs.
func (o *ProductionOrder) ApplyCosting(totalCost, unitCost, profitMargin decimal.Decimal) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsCompleted() {
		return ErrCostingRequiresCompletion
	}

	o.totalCost = totalCost
	o.unitCost = unitCost
	o.profitMargin = profitMargin
	return nil
}

// guardMutable bundles the checks shared by every transition: constructed
// aggregate, valid actor, terminal-state rule, ownership rule.
func (o *ProductionOrder) guardMutable(actor *staff.Member, operation string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderAlreadyCompleted
	}
	if actor.Role().IsWorkshopClass() {
		if o.assignedUserID == nil || !o.assignedUserID.IsEqual(actor.ID()) {
			return errs.NewNotAllowedErrorWithCause(
				operation,
				fmt.Errorf("order %s is not assigned to %s", o.lotCode, actor.Name()),
			)
		}
	}
	return nil
}

// applyTransition mutates the projection and returns the matching history
// entry. It is the single place where stage/status change, which keeps the
// latest-entry invariant by construction.
func (o *ProductionOrder) applyTransition(
	newStage Stage,
	newStatus Status,
	actingUserID kernel.UUID,
	note string,
	now time.Time,
) HistoryEntry {
	previousStage := o.stage
	previousStatus := o.status

	o.stage = newStage
	o.status = newStatus
	o.updatedAt = now

	if newStatus == InProduction && o.startedAt == nil {
		startedAt := now
		o.startedAt = &startedAt
	}
	if newStatus == Completed && o.completedAt == nil {
		completedAt := now
		o.completedAt = &completedAt
	}

	return HistoryEntry{
		id:             kernel.NewUUID(),
		orderID:        o.id,
		previousStage:  &previousStage,
		newStage:       newStage,
		previousStatus: &previousStatus,
		newStatus:      newStatus,
		actingUserID:   actingUserID,
		note:           note,
		recordedAt:     now,
		isConstructed:  true,
	}
}

func (o *ProductionOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ProductionOrder) setLotCode(lotCode kernel.LotCode) error {
	if err := lotCode.Validate(); err != nil {
		return err
	}
	o.lotCode = lotCode
	return nil
}

func (o *ProductionOrder) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	o.productID = productID
	return nil
}

func (o *ProductionOrder) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	o.quantity = quantity
	return nil
}

func (o *ProductionOrder) setSize(size string) error {
	if strings.TrimSpace(size) == "" {
		return errs.NewValueIsRequiredError("size")
	}
	o.size = size
	return nil
}

func (o *ProductionOrder) setEstimatedCompletionAt(estimatedCompletionAt, now time.Time) error {
	if !estimatedCompletionAt.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"estimated completion date",
			fmt.Errorf("%s is not in the future", estimatedCompletionAt.Format(time.RFC3339)),
		)
	}
	o.estimatedCompletionAt = estimatedCompletionAt
	return nil
}

func (o *ProductionOrder) setAssignedUserID(userID *kernel.UUID) error {
	if userID == nil {
		return nil
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	o.assignedUserID = userID
	return nil
}

func (o *ProductionOrder) setAssignedTeamID(teamID *kernel.UUID) error {
	if teamID == nil {
		return nil
	}
	if err := teamID.Validate(); err != nil {
		return err
	}
	o.assignedTeamID = teamID
	return nil
}

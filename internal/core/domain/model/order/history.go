package order

import (
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through one of the constructor functions.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via a constructor or RestoreHistoryEntry",
)

// ErrEmptyHistory is returned when replaying an order with no entries.
var ErrEmptyHistory = errors.New("order has no history entries")

// HistoryEntry is one immutable record in an order's audit trail. Every
// committed transition appends exactly one entry; entries are never modified
// or deleted. The per-order sequence ordered by RecordedAt is load-bearing:
// the cost calculation replays it to measure time spent in production.
//
// PreviousStage and PreviousStatus are nil only on the creation entry.
type HistoryEntry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	previousStage  *Stage
	newStage       Stage
	previousStatus *Status
	newStatus      Status
	actingUserID   kernel.UUID
	note           string
	recordedAt     time.Time

	isConstructed bool
}

// RestoreHistoryEntry rebuilds an entry from persistence without re-running
// transition rules. The stage and status values themselves are still checked.
func RestoreHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	previousStage *Stage,
	newStage Stage,
	previousStatus *Status,
	newStatus Status,
	actingUserID kernel.UUID,
	note string,
	recordedAt time.Time,
) (HistoryEntry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		newStage.Validate(),
		newStatus.Validate(),
		actingUserID.Validate(),
	); err != nil {
		return HistoryEntry{}, err
	}
	if previousStage != nil {
		if err := previousStage.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}
	if previousStatus != nil {
		if err := previousStatus.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	return HistoryEntry{
		id:             id,
		orderID:        orderID,
		previousStage:  previousStage,
		newStage:       newStage,
		previousStatus: previousStatus,
		newStatus:      newStatus,
		actingUserID:   actingUserID,
		note:           note,
		recordedAt:     recordedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the entry came out of a constructor.
func (e HistoryEntry) Validate() error {
	if !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e HistoryEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this entry belongs to.
func (e HistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// PreviousStage returns the stage before the transition, nil for the creation
// entry.
func (e HistoryEntry) PreviousStage() *Stage {
	return e.previousStage
}

// NewStage returns the stage after the transition.
func (e HistoryEntry) NewStage() Stage {
	return e.newStage
}

// PreviousStatus returns the status before the transition, nil for the
// creation entry.
func (e HistoryEntry) PreviousStatus() *Status {
	return e.previousStatus
}

// NewStatus returns the status after the transition.
func (e HistoryEntry) NewStatus() Status {
	return e.newStatus
}

// ActingUserID returns who performed the transition.
func (e HistoryEntry) ActingUserID() kernel.UUID {
	return e.actingUserID
}

// Note returns the free-text note attached to the transition.
func (e HistoryEntry) Note() string {
	return e.note
}

// RecordedAt returns when the transition happened.
func (e HistoryEntry) RecordedAt() time.Time {
	return e.recordedAt
}

// ReplayHistory runs through an order's entries in the given order and
// returns the stage and status they end at. For any reachable order state the
// result equals the order's denormalized current stage and status; tests use
// this to verify the projection invariant.
func ReplayHistory(entries []HistoryEntry) (Stage, Status, error) {
	if len(entries) == 0 {
		return UnknownStage, UnknownStatus, ErrEmptyHistory
	}

	var stage Stage
	var status Status
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return UnknownStage, UnknownStatus, err
		}
		stage = entry.NewStage()
		status = entry.NewStatus()
	}
	return stage, status, nil
}

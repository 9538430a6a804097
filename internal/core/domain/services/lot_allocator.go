package services

import (
	"context"
	"sync"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// LotCodeSequenceReader reports the highest sequence number already persisted
// for a calendar day, or 0 when the day has no codes yet.
type LotCodeSequenceReader interface {
	MaxLotCodeSequence(ctx context.Context, dayPrefix string) (int, error)
}

// LotCodeAllocator hands out day-scoped lot codes. A process-wide mutex spans
// the read of the current maximum AND the commit of the new code, so two
// concurrent allocations in the same process can never observe the same
// maximum. Across processes the storage unique index on the lot code is the
// backstop; a violation there surfaces to the caller unchanged.
type LotCodeAllocator struct {
	mu sync.Mutex
}

// NewLotCodeAllocator creates an allocator.
func NewLotCodeAllocator() *LotCodeAllocator {
	return &LotCodeAllocator{}
}

// Allocate reserves the next lot code for now's calendar day and invokes
// commit with it while still holding the allocation lock. commit must persist
// the code (typically by inserting the order that carries it); if it fails,
// the code is considered never issued and the error is returned as is.
func (a *LotCodeAllocator) Allocate(
	ctx context.Context,
	sequences LotCodeSequenceReader,
	now time.Time,
	commit func(kernel.LotCode) error,
) (kernel.LotCode, error) {
	if sequences == nil {
		return kernel.LotCode{}, errs.NewValueIsRequiredError("sequences")
	}
	if commit == nil {
		return kernel.LotCode{}, errs.NewValueIsRequiredError("commit")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	maxSeq, err := sequences.MaxLotCodeSequence(ctx, kernel.LotCodeDayPrefix(now))
	if err != nil {
		return kernel.LotCode{}, err
	}

	code, err := kernel.NewLotCode(now, maxSeq+1)
	if err != nil {
		return kernel.LotCode{}, err
	}

	if err := commit(code); err != nil {
		return kernel.LotCode{}, err
	}
	return code, nil
}

package orderrepo

import (
	"context"
	"errors"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A duplicate lot code trips the
// unique index and comes back as a LotCodeConflictError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewLotCodeConflictErrorWithCause(dto.LotCode, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLotCode retrieves an order by its lot code.
func (r *GormOrderRepository) GetByLotCode(ctx context.Context, code kernel.LotCode) (*order.ProductionOrder, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "lot_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AppendHistory persists one history entry.
func (r *GormOrderRepository) AppendHistory(ctx context.Context, entry order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListHistory returns an order's full trail ordered by recording time.
// Entries recorded within the same instant fall back to insertion order.
func (r *GormOrderRepository) ListHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MaxLotCodeSequence returns the highest sequence issued for a calendar day.
// The day's codes are fetched and parsed in Go: the suffix is numeric, so a
// lexicographic SQL MAX would order "10" before "9".
func (r *GormOrderRepository) MaxLotCodeSequence(ctx context.Context, dayPrefix string) (int, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("lot_code LIKE ?", dayPrefix+"%").
		Pluck("lot_code", &codes).Error
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, raw := range codes {
		code, parseErr := kernel.ParseLotCode(raw)
		if parseErr != nil {
			return 0, parseErr
		}
		if code.Sequence() > maxSeq {
			maxSeq = code.Sequence()
		}
	}

	return maxSeq, nil
}

// GetAllActive retrieves all orders whose status is not terminal.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.ProductionOrder, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status != ?", int(order.Completed)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllOverdue retrieves active orders past their promised completion date.
func (r *GormOrderRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*order.ProductionOrder, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status != ? AND estimated_completion_at < ?", int(order.Completed), now).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedForTeam retrieves a team's orders completed within [from, to].
func (r *GormOrderRepository) GetCompletedForTeam(
	ctx context.Context,
	teamID kernel.UUID,
	from, to time.Time,
) ([]*order.ProductionOrder, error) {
	if err := teamID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("assigned_team_id = ? AND status = ? AND completed_at BETWEEN ? AND ?",
			teamID.Bytes(), int(order.Completed), from, to).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedForUser retrieves a member's orders completed within [from, to].
func (r *GormOrderRepository) GetCompletedForUser(
	ctx context.Context,
	userID kernel.UUID,
	from, to time.Time,
) ([]*order.ProductionOrder, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("assigned_user_id = ? AND status = ? AND completed_at BETWEEN ? AND ?",
			userID.Bytes(), int(order.Completed), from, to).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.ProductionOrder, error) {
	orders := make([]*order.ProductionOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Package qarepo reads quality inspection results. Inspections are recorded
// by the QA side of the system; the production core only aggregates them
// when calculating bonuses.
package qarepo

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefectDTO represents one quality inspection finding for an order.
type DefectDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"type:int;not null"`
	Reason     string    `gorm:"type:varchar(255)"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for defect findings.
func (DefectDTO) TableName() string {
	return "order_defects"
}

// GormDefectRegistry implements DefectRegistry using GORM.
type GormDefectRegistry struct {
	db *gorm.DB
}

// NewGormDefectRegistry creates a new GORM defect registry.
func NewGormDefectRegistry(db *gorm.DB) *GormDefectRegistry {
	return &GormDefectRegistry{db: db}
}

// DefectCount returns the total defective units recorded for an order.
// An order without findings counts as zero.
func (r *GormDefectRegistry) DefectCount(ctx context.Context, orderID kernel.UUID) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var total int64
	err := r.db.WithContext(ctx).
		Model(&DefectDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return int(total), nil
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

// CostModel is the set of records that carry a CostEntry.
type CostModel interface {
	models.Subscription | models.TikTokAd
}

// CostTotals is the aggregate spend over a filtered set of cost records.
type CostTotals struct {
	TotalCost float64 `json:"totalCost"`
	Count     int64   `json:"count"`
}

// CostRepo stores subscriptions and TikTok ads, which share the same shape
// and queries.
type CostRepo[T CostModel] struct {
	db *gorm.DB
}

func NewCostRepo[T CostModel](db *gorm.DB) *CostRepo[T] {
	return &CostRepo[T]{db}
}

// Find returns one page of records, most recent date first.
func (r *CostRepo[T]) Find(ctx context.Context, filter CostFilter) ([]*T, int64, error) {
	var records []*T
	q := filter.apply(r.db.WithContext(ctx).Model(new(T)))
	total, err := paginate(q, filter.Page, "date DESC, created_at DESC", &records)
	return records, total, err
}

// FindAll returns every record matching filter without paging.
func (r *CostRepo[T]) FindAll(ctx context.Context, filter CostFilter) ([]*T, error) {
	var records []*T
	err := filter.apply(r.db.WithContext(ctx).Model(new(T))).Order("date DESC").Find(&records).Error
	return records, err
}

func (r *CostRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *CostRepo[T]) Add(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *CostRepo[T]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *CostRepo[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// Totals sums price over the records matching filter. Paging is ignored.
func (r *CostRepo[T]) Totals(ctx context.Context, filter CostFilter) (CostTotals, error) {
	var totals CostTotals
	err := filter.apply(r.db.WithContext(ctx).Model(new(T))).
		Select("COALESCE(SUM(price), 0) AS total_cost, COUNT(*) AS count").
		Scan(&totals).Error
	return totals, err
}

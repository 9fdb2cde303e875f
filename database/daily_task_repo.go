package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

type DailyTaskRepo struct {
	db *gorm.DB
}

func NewDailyTaskRepo(db *gorm.DB) *DailyTaskRepo {
	return &DailyTaskRepo{db}
}

// Find returns one page of tasks, newest first.
func (r *DailyTaskRepo) Find(ctx context.Context, filter DailyTaskFilter) ([]*models.DailyTask, int64, error) {
	var tasks []*models.DailyTask
	q := filter.apply(r.db.WithContext(ctx).Model(&models.DailyTask{}))
	total, err := paginate(q, filter.Page, "created_at DESC", &tasks)
	return tasks, total, err
}

func (r *DailyTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DailyTask, error) {
	var task models.DailyTask
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *DailyTaskRepo) Add(ctx context.Context, task *models.DailyTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *DailyTaskRepo) Update(ctx context.Context, task *models.DailyTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *DailyTaskRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.DailyTask{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// ToggleCompleted flips the completed flag in a single statement and returns
// the updated task, or nil when it does not exist.
func (r *DailyTaskRepo) ToggleCompleted(ctx context.Context, id uuid.UUID) (*models.DailyTask, error) {
	return r.updateColumns(ctx, id, map[string]any{
		"completed": gorm.Expr("NOT completed"),
	})
}

// Move changes the task's date. The id and every other field are kept.
func (r *DailyTaskRepo) Move(ctx context.Context, id uuid.UUID, date models.Date) (*models.DailyTask, error) {
	return r.updateColumns(ctx, id, map[string]any{
		"date": date,
	})
}

func (r *DailyTaskRepo) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) (*models.DailyTask, error) {
	columns["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.DailyTask{}).
		Where("id = ?", id).
		UpdateColumns(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

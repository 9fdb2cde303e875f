package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Find returns one page of projects matching filter, newest first, and the
// total number of matches.
func (r *ProjectRepo) Find(ctx context.Context, filter ProjectFilter) ([]*models.Project, int64, error) {
	var projects []*models.Project
	q := filter.apply(r.db.WithContext(ctx).Model(&models.Project{}))
	total, err := paginate(q, filter.Page, "created_at DESC", &projects)
	return projects, total, err
}

// FindAll returns every project matching filter without paging. Used by the
// finance views, which aggregate over the whole set.
func (r *ProjectRepo) FindAll(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	var projects []*models.Project
	err := filter.apply(r.db.WithContext(ctx)).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when it does not exist.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update writes every column of project. The save hook recomputes the
// remaining amount before the row is written.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project by id and reports whether a row existed.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

// NoteModel is the set of permanent free text notes.
type NoteModel interface {
	models.ImportantNote | models.GeneralNote
}

type NoteRepo[T NoteModel] struct {
	db *gorm.DB
}

func NewNoteRepo[T NoteModel](db *gorm.DB) *NoteRepo[T] {
	return &NoteRepo[T]{db}
}

// Find returns one page of notes, newest first.
func (r *NoteRepo[T]) Find(ctx context.Context, filter NoteFilter) ([]*T, int64, error) {
	var notes []*T
	q := filter.apply(r.db.WithContext(ctx).Model(new(T)))
	total, err := paginate(q, filter.Page, "created_at DESC", &notes)
	return notes, total, err
}

func (r *NoteRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var note T
	err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepo[T]) Add(ctx context.Context, note *T) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepo[T]) Update(ctx context.Context, note *T) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *NoteRepo[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

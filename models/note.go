package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteBody is the content of a permanent free text note.
type NoteBody struct {
	Content string `json:"content" db:"content" gorm:"type:text;not null"`
}

func (b *NoteBody) Validate() error {
	return requireText("content", b.Content, 2000)
}

type ImportantNote struct {
	ID uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	NoteBody
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (n *ImportantNote) BeforeSave(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return n.Validate()
}

type GeneralNote struct {
	ID uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	NoteBody
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (n *GeneralNote) BeforeSave(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return n.Validate()
}

// DailyTask is a to-do pinned to one day. Moving it changes Date only.
type DailyTask struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	Date      Date      `json:"date" db:"date" gorm:"type:date;not null;index:idx_daily_task_date"`
	Completed bool      `json:"completed" db:"completed" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (t *DailyTask) BeforeSave(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return t.Validate()
}

func (t *DailyTask) Validate() error {
	if err := requireText("content", t.Content, 1000); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return &FieldError{Field: "date", Missing: true}
	}
	return nil
}

// DailyTaskPatch carries the fields a client sent on update.
type DailyTaskPatch struct {
	Content   *string `json:"content"`
	Date      *Date   `json:"date"`
	Completed *bool   `json:"completed"`
}

func (p DailyTaskPatch) Apply(t *DailyTask) {
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

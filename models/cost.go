package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostEntry is the shared shape of pure cost records.
type CostEntry struct {
	Name  string  `json:"name" db:"name" gorm:"type:text;not null"`
	Price float64 `json:"price" db:"price" gorm:"type:numeric;not null"`
	Date  Date    `json:"date" db:"date" gorm:"type:date;not null;index"`
}

func (c *CostEntry) Validate() error {
	if err := requireText("name", c.Name, 100); err != nil {
		return err
	}
	if c.Price < 0 {
		return &FieldError{Field: "price", Reason: "cannot be negative"}
	}
	if c.Date.IsZero() {
		return &FieldError{Field: "date", Missing: true}
	}
	return nil
}

// CostEntryPatch carries the fields a client sent on update.
type CostEntryPatch struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Date  *Date    `json:"date"`
}

func (p CostEntryPatch) Apply(c *CostEntry) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
}

// Subscription is a recurring tool or service cost.
type Subscription struct {
	ID uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	CostEntry
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (s *Subscription) BeforeSave(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return s.Validate()
}

// TikTokAd is the spend of one ad campaign.
type TikTokAd struct {
	ID uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	CostEntry
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (TikTokAd) TableName() string {
	return "tiktok_ads"
}

func (a *TikTokAd) BeforeSave(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return a.Validate()
}

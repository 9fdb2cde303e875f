package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectLabel says where a project was sourced.
type ProjectLabel string

const (
	LabelInHouse    ProjectLabel = "In-House"
	LabelFreelancer ProjectLabel = "Freelancer"
)

func (l ProjectLabel) Valid() bool {
	return l == LabelInHouse || l == LabelFreelancer
}

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	return s == StatusActive || s == StatusCompleted
}

// Project represents a client project and its money fields. Every amount is
// optional; a missing amount counts as zero in finance views.
type Project struct {
	ID                    uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name                  string        `json:"name" db:"name" gorm:"type:text;not null"`
	PhoneNumber           string        `json:"phoneNumber" db:"phone_number" gorm:"type:text;not null"`
	Notes                 string        `json:"notes,omitempty" db:"notes" gorm:"type:text"`
	Instagram             string        `json:"instagram,omitempty" db:"instagram" gorm:"type:text"`
	WebsiteLink           string        `json:"websiteLink,omitempty" db:"website_link" gorm:"type:text"`
	TotalAmount           *float64      `json:"totalAmount,omitempty" db:"total_amount" gorm:"type:numeric"`
	AmountReceived        *float64      `json:"amountReceived,omitempty" db:"amount_received" gorm:"type:numeric"`
	RemainingAmount       *float64      `json:"remainingAmount,omitempty" db:"remaining_amount" gorm:"type:numeric"`
	FinishedDate          *Date         `json:"finishedDate,omitempty" db:"finished_date" gorm:"type:date"`
	DomainCost            *float64      `json:"domainCost,omitempty" db:"domain_cost" gorm:"type:numeric"`
	AdditionalCosts       *float64      `json:"additionalCosts,omitempty" db:"additional_costs" gorm:"type:numeric"`
	AdditionalCostReason  string        `json:"additionalCostReason,omitempty" db:"additional_cost_reason" gorm:"type:text"`
	FreelancerManagerFees *float64      `json:"freelancerManagerFees,omitempty" db:"freelancer_manager_fees" gorm:"type:numeric"`
	FreelancerFees        *float64      `json:"freelancerFees,omitempty" db:"freelancer_fees" gorm:"type:numeric"`
	Freelancer            string        `json:"freelancer,omitempty" db:"freelancer" gorm:"type:text"`
	Label                 ProjectLabel  `json:"label" db:"label" gorm:"type:text;not null;default:'In-House';index:idx_project_label"`
	Status                ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:'active';index:idx_project_status_created,priority:1"`
	CreatedAt             time.Time     `json:"createdAt" db:"created_at" gorm:"index:idx_project_status_created,priority:2"`
	UpdatedAt             time.Time     `json:"updatedAt" db:"updated_at"`
}

// BeforeSave runs on create and on every update, so the derived remaining
// amount can never drift from the two amounts it is computed from.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.ApplyDefaults()
	p.RecomputeRemaining()
	return p.Validate()
}

// ApplyDefaults fills label and status for records created without them.
func (p *Project) ApplyDefaults() {
	if p.Label == "" {
		p.Label = LabelInHouse
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
}

// RecomputeRemaining sets remainingAmount = totalAmount - amountReceived.
// Without a total there is nothing to owe, so the field is cleared.
func (p *Project) RecomputeRemaining() {
	if p.TotalAmount == nil {
		p.RemainingAmount = nil
		return
	}
	remaining := *p.TotalAmount - Amount(p.AmountReceived)
	p.RemainingAmount = &remaining
}

// Complete marks the project finished. The first completion date is kept on
// repeated calls.
func (p *Project) Complete(now time.Time) {
	p.Status = StatusCompleted
	if p.FinishedDate == nil || p.FinishedDate.IsZero() {
		d := NewDate(now)
		p.FinishedDate = &d
	}
}

// Reactivate moves a completed project back to active. finishedDate is left
// as recorded.
func (p *Project) Reactivate() {
	p.Status = StatusActive
}

func (p *Project) IsFreelancer() bool {
	return p.Label == LabelFreelancer
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

// ReferenceDate is finishedDate when set, createdAt otherwise.
func (p *Project) ReferenceDate() time.Time {
	if p.FinishedDate != nil && !p.FinishedDate.IsZero() {
		return p.FinishedDate.Time
	}
	return p.CreatedAt
}

func (p *Project) Validate() error {
	if err := requireText("name", p.Name, 100); err != nil {
		return err
	}
	if err := requireText("phoneNumber", p.PhoneNumber, 0); err != nil {
		return err
	}

	limits := []struct {
		field string
		value string
		max   int
	}{
		{"notes", p.Notes, 1000},
		{"instagram", p.Instagram, 100},
		{"websiteLink", p.WebsiteLink, 500},
		{"additionalCostReason", p.AdditionalCostReason, 200},
	}
	for _, l := range limits {
		if err := maxLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	amounts := []struct {
		field string
		value *float64
	}{
		{"totalAmount", p.TotalAmount},
		{"amountReceived", p.AmountReceived},
		{"domainCost", p.DomainCost},
		{"additionalCosts", p.AdditionalCosts},
		{"freelancerManagerFees", p.FreelancerManagerFees},
		{"freelancerFees", p.FreelancerFees},
	}
	for _, a := range amounts {
		if a.value != nil && *a.value < 0 {
			return &FieldError{Field: a.field, Reason: "cannot be negative"}
		}
	}

	if p.RemainingAmount != nil && *p.RemainingAmount < 0 {
		return &FieldError{Field: "amountReceived", Reason: "cannot exceed total amount"}
	}
	if !p.Label.Valid() {
		return &FieldError{Field: "label", Reason: "must be In-House or Freelancer"}
	}
	if !p.Status.Valid() {
		return &FieldError{Field: "status", Reason: "must be active or completed"}
	}
	return nil
}

// Amount reads an optional money field, treating nil as zero.
func Amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float64 returns a pointer to v, for optional money fields.
func Float64(v float64) *float64 {
	return &v
}

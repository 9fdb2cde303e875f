package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

// Page is a 1-based page request. A non-positive Limit disables paging.
type Page struct {
	Number int
	Limit  int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Limit <= 0 {
		return q
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return q.Offset((number - 1) * p.Limit).Limit(p.Limit)
}

// Pages returns how many pages total records span.
func (p Page) Pages(total int64) int {
	if p.Limit <= 0 {
		if total > 0 {
			return 1
		}
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// ProjectFilter narrows a project listing. Nil fields match everything.
type ProjectFilter struct {
	Status *models.ProjectStatus
	Label  *models.ProjectLabel
	Search string
	Page   Page
}

func (f ProjectFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Label != nil {
		q = q.Where("label = ?", *f.Label)
	}
	if pattern := likePattern(f.Search); pattern != "" {
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(phone_number) LIKE ? ESCAPE '\\' OR LOWER(notes) LIKE ? ESCAPE '\\' OR LOWER(freelancer) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern, pattern)
	}
	return q
}

// CostFilter narrows subscriptions and TikTok ads by name and date range.
// Both bounds are inclusive.
type CostFilter struct {
	Search string
	Start  *models.Date
	End    *models.Date
	Page   Page
}

func (f CostFilter) apply(q *gorm.DB) *gorm.DB {
	if pattern := likePattern(f.Search); pattern != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern)
	}
	if f.Start != nil {
		q = q.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("date <= ?", *f.End)
	}
	return q
}

type NoteFilter struct {
	Search string
	Page   Page
}

func (f NoteFilter) apply(q *gorm.DB) *gorm.DB {
	if pattern := likePattern(f.Search); pattern != "" {
		q = q.Where("LOWER(content) LIKE ? ESCAPE '\\'", pattern)
	}
	return q
}

type DailyTaskFilter struct {
	Date      *models.Date
	Completed *bool
	Search    string
	Page      Page
}

func (f DailyTaskFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}
	if pattern := likePattern(f.Search); pattern != "" {
		q = q.Where("LOWER(content) LIKE ? ESCAPE '\\'", pattern)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern, or "" for no search.
// Wildcards in search match literally; clauses using it must declare
// ESCAPE '\'.
func likePattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// paginate counts the filtered rows and loads the requested page into dest.
func paginate(q *gorm.DB, page Page, order string, dest any) (int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if err := page.apply(q.Session(&gorm.Session{})).Order(order).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

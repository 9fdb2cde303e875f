package finance

import (
	"fmt"
	"time"

	"github.com/webiquedev/opsboard-backend/models"
)

// Range selects projects by how recently they finished or were created.
type Range string

const (
	RangeAll      Range = "all"
	RangeOneMonth Range = "1m"
	RangeQuarter  Range = "3m"
	RangeHalfYear Range = "6m"
	RangeYear     Range = "12m"
)

var rangeMonths = map[Range]int{
	RangeOneMonth: 1,
	RangeQuarter:  3,
	RangeHalfYear: 6,
	RangeYear:     12,
}

// ParseRange accepts all, 1m, 3m, 6m and 12m. An empty string means all.
func ParseRange(s string) (Range, error) {
	r := Range(s)
	if s == "" || r == RangeAll {
		return RangeAll, nil
	}
	if _, ok := rangeMonths[r]; !ok {
		return "", fmt.Errorf("unknown range %q, expected one of all, 1m, 3m, 6m, 12m", s)
	}
	return r, nil
}

// Cutoff returns the earliest reference date included, and false for all.
func (r Range) Cutoff(now time.Time) (time.Time, bool) {
	months, ok := rangeMonths[r]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, -months, 0), true
}

// FilterProjects keeps the projects whose reference date (finishedDate, else
// createdAt) is on or after the range cutoff.
func FilterProjects(projects []*models.Project, r Range, now time.Time) []*models.Project {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return projects
	}
	out := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if !p.ReferenceDate().Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

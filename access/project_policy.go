package access

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

// ManagerEditableFields are the project fields a freelancer manager may set.
var ManagerEditableFields = map[string]bool{
	"name":        true,
	"phoneNumber": true,
	"instagram":   true,
	"websiteLink": true,
	"totalAmount": true,
	"freelancer":  true,
	"notes":       true,
}

func forbiddenFields(fields []string) []string {
	var out []string
	for _, f := range fields {
		if !ManagerEditableFields[f] {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// CanManagerView reports whether a freelancer manager may read project.
func CanManagerView(project *models.Project) bool {
	return project.IsFreelancer()
}

// CheckManagerUpdate decides whether a freelancer manager may apply patch to
// project. Notes may be edited on any Freelancer project; every other field
// needs the project to also be active.
func CheckManagerUpdate(project *models.Project, patch models.ProjectPatch) error {
	fields := patch.Fields()
	if bad := forbiddenFields(fields); len(bad) > 0 {
		return deny(fmt.Sprintf("freelancer managers cannot change %s", strings.Join(bad, ", ")))
	}
	if !project.IsFreelancer() {
		return deny("freelancer managers can only edit Freelancer projects")
	}
	if len(fields) == 1 && fields[0] == "notes" {
		return nil
	}
	if !project.IsActive() {
		return deny("freelancer managers can only edit active projects")
	}
	return nil
}

// NewManagerProject builds the project a freelancer manager creates. Label,
// status and the fixed cost fields are set by policy; a request may repeat the
// policy value for one of them but may not change it.
func NewManagerProject(patch models.ProjectPatch) (*models.Project, error) {
	var bad []string
	for _, f := range forbiddenFields(patch.Fields()) {
		if !matchesManagerDefault(f, patch) {
			bad = append(bad, f)
		}
	}
	if len(bad) > 0 {
		return nil, deny(fmt.Sprintf("freelancer managers cannot set %s", strings.Join(bad, ", ")))
	}

	project := &models.Project{
		Label:                 models.LabelFreelancer,
		Status:                models.StatusActive,
		DomainCost:            models.Float64(finance.DefaultDomainCost),
		FreelancerManagerFees: models.Float64(finance.DefaultManagerFee),
		FreelancerFees:        models.Float64(finance.DefaultFreelancerFee),
	}
	allowed := models.ProjectPatch{
		Name:        patch.Name,
		PhoneNumber: patch.PhoneNumber,
		Notes:       patch.Notes,
		Instagram:   patch.Instagram,
		WebsiteLink: patch.WebsiteLink,
		TotalAmount: patch.TotalAmount,
		Freelancer:  patch.Freelancer,
	}
	allowed.Apply(project, time.Time{})
	return project, nil
}

func matchesManagerDefault(field string, patch models.ProjectPatch) bool {
	switch field {
	case "label":
		return *patch.Label == models.LabelFreelancer
	case "status":
		return *patch.Status == models.StatusActive
	case "domainCost":
		return *patch.DomainCost == finance.DefaultDomainCost
	case "freelancerManagerFees":
		return *patch.FreelancerManagerFees == finance.DefaultManagerFee
	case "freelancerFees":
		return *patch.FreelancerFees == finance.DefaultFreelancerFee
	default:
		return false
	}
}

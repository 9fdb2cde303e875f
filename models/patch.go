package models

import "time"

// ProjectPatch is a partial project update. A nil field was not sent and is
// left unchanged.
type ProjectPatch struct {
	Name                  *string        `json:"name"`
	PhoneNumber           *string        `json:"phoneNumber"`
	Notes                 *string        `json:"notes"`
	Instagram             *string        `json:"instagram"`
	WebsiteLink           *string        `json:"websiteLink"`
	TotalAmount           *float64       `json:"totalAmount"`
	AmountReceived        *float64       `json:"amountReceived"`
	FinishedDate          *Date          `json:"finishedDate"`
	DomainCost            *float64       `json:"domainCost"`
	AdditionalCosts       *float64       `json:"additionalCosts"`
	AdditionalCostReason  *string        `json:"additionalCostReason"`
	FreelancerManagerFees *float64       `json:"freelancerManagerFees"`
	FreelancerFees        *float64       `json:"freelancerFees"`
	Freelancer            *string        `json:"freelancer"`
	Label                 *ProjectLabel  `json:"label"`
	Status                *ProjectStatus `json:"status"`
}

// Fields lists the JSON names of the fields present in the patch.
func (p ProjectPatch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}

	add(p.Name != nil, "name")
	add(p.PhoneNumber != nil, "phoneNumber")
	add(p.Notes != nil, "notes")
	add(p.Instagram != nil, "instagram")
	add(p.WebsiteLink != nil, "websiteLink")
	add(p.TotalAmount != nil, "totalAmount")
	add(p.AmountReceived != nil, "amountReceived")
	add(p.FinishedDate != nil, "finishedDate")
	add(p.DomainCost != nil, "domainCost")
	add(p.AdditionalCosts != nil, "additionalCosts")
	add(p.AdditionalCostReason != nil, "additionalCostReason")
	add(p.FreelancerManagerFees != nil, "freelancerManagerFees")
	add(p.FreelancerFees != nil, "freelancerFees")
	add(p.Freelancer != nil, "freelancer")
	add(p.Label != nil, "label")
	add(p.Status != nil, "status")
	return fields
}

// Apply copies the present fields onto project. A status change goes through
// the lifecycle methods so completion dates follow the same rules as the
// dedicated complete endpoint.
func (p ProjectPatch) Apply(project *Project, now time.Time) {
	setString(&project.Name, p.Name)
	setString(&project.PhoneNumber, p.PhoneNumber)
	setString(&project.Notes, p.Notes)
	setString(&project.Instagram, p.Instagram)
	setString(&project.WebsiteLink, p.WebsiteLink)
	setString(&project.AdditionalCostReason, p.AdditionalCostReason)
	setString(&project.Freelancer, p.Freelancer)

	setAmount(&project.TotalAmount, p.TotalAmount)
	setAmount(&project.AmountReceived, p.AmountReceived)
	setAmount(&project.DomainCost, p.DomainCost)
	setAmount(&project.AdditionalCosts, p.AdditionalCosts)
	setAmount(&project.FreelancerManagerFees, p.FreelancerManagerFees)
	setAmount(&project.FreelancerFees, p.FreelancerFees)

	if p.FinishedDate != nil {
		d := *p.FinishedDate
		project.FinishedDate = &d
	}
	if p.Label != nil {
		project.Label = *p.Label
	}
	if p.Status != nil {
		switch *p.Status {
		case StatusCompleted:
			project.Complete(now)
		case StatusActive:
			project.Reactivate()
		default:
			project.Status = *p.Status
		}
	}
	project.RecomputeRemaining()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setAmount(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

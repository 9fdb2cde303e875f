// Package finance derives profit figures from projects and cost records. It
// never mutates its inputs; missing amounts count as zero.
package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/webiquedev/opsboard-backend/models"
)

// ProjectBreakdown is the per-project view of revenue and cost.
type ProjectBreakdown struct {
	ProjectID         uuid.UUID            `json:"projectId"`
	Name              string               `json:"name"`
	Label             models.ProjectLabel  `json:"label"`
	Status            models.ProjectStatus `json:"status"`
	Revenue           float64              `json:"revenue"`
	TotalProjectCosts float64              `json:"totalProjectCosts"`
	FreelancerCosts   float64              `json:"freelancerCosts"`
	Profit            float64              `json:"profit"`
}

// Overview aggregates a portfolio of projects and pure cost records.
type Overview struct {
	ProjectCount           int     `json:"projectCount"`
	TotalRevenue           float64 `json:"totalRevenue"`
	TotalAmountReceived    float64 `json:"totalAmountReceived"`
	TotalRemainingAmount   float64 `json:"totalRemainingAmount"`
	ProjectCosts           float64 `json:"projectCosts"`
	FreelancerCosts        float64 `json:"freelancerCosts"`
	TotalSubscriptionCosts float64 `json:"totalSubscriptionCosts"`
	TotalTikTokAdCosts     float64 `json:"totalTikTokAdCosts"`
	TotalCosts             float64 `json:"totalCosts"`
	TotalProfit            float64 `json:"totalProfit"`
	ProfitMargin           float64 `json:"profitMargin"`
}

func amount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

type projectFigures struct {
	revenue         decimal.Decimal
	projectCosts    decimal.Decimal
	freelancerCosts decimal.Decimal
}

// profit excludes freelancer and manager fees; those are reported on their own.
func (f projectFigures) profit() decimal.Decimal {
	return f.revenue.Sub(f.projectCosts)
}

func figures(p *models.Project) projectFigures {
	return projectFigures{
		revenue:         amount(p.AmountReceived),
		projectCosts:    amount(p.DomainCost).Add(amount(p.AdditionalCosts)),
		freelancerCosts: amount(p.FreelancerManagerFees).Add(amount(p.FreelancerFees)),
	}
}

// Breakdown computes revenue, costs and profit for one project.
func Breakdown(p *models.Project) ProjectBreakdown {
	f := figures(p)
	return ProjectBreakdown{
		ProjectID:         p.ID,
		Name:              p.Name,
		Label:             p.Label,
		Status:            p.Status,
		Revenue:           f.revenue.InexactFloat64(),
		TotalProjectCosts: f.projectCosts.InexactFloat64(),
		FreelancerCosts:   f.freelancerCosts.InexactFloat64(),
		Profit:            f.profit().InexactFloat64(),
	}
}

// Breakdowns maps Breakdown over projects, keeping their order.
func Breakdowns(projects []*models.Project) []ProjectBreakdown {
	out := make([]ProjectBreakdown, 0, len(projects))
	for _, p := range projects {
		out = append(out, Breakdown(p))
	}
	return out
}

// Profit is amountReceived - (domainCost + additionalCosts).
func Profit(p *models.Project) float64 {
	return figures(p).profit().InexactFloat64()
}

// SumPrices totals the price of a set of cost records.
func SumPrices(entries []models.CostEntry) float64 {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(decimal.NewFromFloat(e.Price))
	}
	return total.InexactFloat64()
}

// ComputeOverview aggregates projects, subscriptions and ads into the
// portfolio totals. Empty inputs yield all zeros with a zero margin.
func ComputeOverview(projects []*models.Project, subscriptions, ads []models.CostEntry) Overview {
	var (
		revenue         = decimal.Zero
		received        = decimal.Zero
		remaining       = decimal.Zero
		projectCosts    = decimal.Zero
		freelancerCosts = decimal.Zero
	)
	for _, p := range projects {
		f := figures(p)
		revenue = revenue.Add(amount(p.TotalAmount))
		received = received.Add(f.revenue)
		remaining = remaining.Add(amount(p.RemainingAmount))
		projectCosts = projectCosts.Add(f.projectCosts)
		freelancerCosts = freelancerCosts.Add(f.freelancerCosts)
	}

	subscriptionCosts := decimal.NewFromFloat(SumPrices(subscriptions))
	adCosts := decimal.NewFromFloat(SumPrices(ads))
	totalCosts := projectCosts.Add(subscriptionCosts).Add(adCosts)
	profit := received.Sub(totalCosts)

	return Overview{
		ProjectCount:           len(projects),
		TotalRevenue:           revenue.InexactFloat64(),
		TotalAmountReceived:    received.InexactFloat64(),
		TotalRemainingAmount:   remaining.InexactFloat64(),
		ProjectCosts:           projectCosts.InexactFloat64(),
		FreelancerCosts:        freelancerCosts.InexactFloat64(),
		TotalSubscriptionCosts: subscriptionCosts.InexactFloat64(),
		TotalTikTokAdCosts:     adCosts.InexactFloat64(),
		TotalCosts:             totalCosts.InexactFloat64(),
		TotalProfit:            profit.InexactFloat64(),
		ProfitMargin:           margin(profit, received).InexactFloat64(),
	}
}

// margin is profit as a percentage of revenue, 0 when there is no revenue.
func margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

package finance

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webiquedev/opsboard-backend/models"
)

func project(received, total, domain, additional float64) *models.Project {
	p := &models.Project{
		Name:            "p",
		TotalAmount:     models.Float64(total),
		AmountReceived:  models.Float64(received),
		DomainCost:      models.Float64(domain),
		AdditionalCosts: models.Float64(additional),
	}
	p.RecomputeRemaining()
	return p
}

func TestProfit(t *testing.T) {
	p := project(890, 890, 100, 40)
	p.FreelancerFees = models.Float64(310)
	p.FreelancerManagerFees = models.Float64(50)

	assert.Equal(t, 750.0, Profit(p))

	b := Breakdown(p)
	assert.Equal(t, 890.0, b.Revenue)
	assert.Equal(t, 140.0, b.TotalProjectCosts)
	assert.Equal(t, 360.0, b.FreelancerCosts)
	assert.Equal(t, 750.0, b.Profit)
}

func TestProfit_MissingFieldsAreZero(t *testing.T) {
	p := &models.Project{Name: "empty"}
	assert.Equal(t, 0.0, Profit(p))

	p.AmountReceived = models.Float64(200)
	assert.Equal(t, 200.0, Profit(p))
}

func TestComputeOverview_Empty(t *testing.T) {
	assert.Equal(t, Overview{}, ComputeOverview(nil, nil, nil))
}

func TestComputeOverview(t *testing.T) {
	projects := []*models.Project{
		project(1000, 1500, 100, 0),
		project(400, 400, 100, 50),
	}
	subs := []models.CostEntry{{Name: "Figma", Price: 45}, {Name: "Hosting", Price: 5}}
	ads := []models.CostEntry{{Name: "Spring", Price: 100}}

	o := ComputeOverview(projects, subs, ads)
	assert.Equal(t, 2, o.ProjectCount)
	assert.Equal(t, 1900.0, o.TotalRevenue)
	assert.Equal(t, 1400.0, o.TotalAmountReceived)
	assert.Equal(t, 500.0, o.TotalRemainingAmount)
	assert.Equal(t, 250.0, o.ProjectCosts)
	assert.Equal(t, 50.0, o.TotalSubscriptionCosts)
	assert.Equal(t, 100.0, o.TotalTikTokAdCosts)
	assert.Equal(t, 400.0, o.TotalCosts)
	assert.Equal(t, 1000.0, o.TotalProfit)
	assert.Equal(t, 71.43, o.ProfitMargin)
}

func TestComputeOverview_FloatSums(t *testing.T) {
	subs := []models.CostEntry{{Price: 0.1}, {Price: 0.2}}
	o := ComputeOverview(nil, subs, nil)
	assert.Equal(t, 0.3, o.TotalSubscriptionCosts)
	assert.Equal(t, -0.3, o.TotalProfit)
	assert.Equal(t, 0.0, o.ProfitMargin)
}

func TestCalculateBreakEven(t *testing.T) {
	result, err := CalculateBreakEven(1290, DefaultEconomics())
	require.NoError(t, err)

	assert.Equal(t, 790.0, result.InHouse.ProfitPerProject)
	assert.EqualValues(t, 2, result.InHouse.ProjectsRequired)
	assert.Equal(t, 200.0, result.InHouse.TotalCost)
	assert.Equal(t, 1780.0, result.InHouse.TotalRevenue)
	assert.Equal(t, 1580.0, result.InHouse.TotalProfit)

	assert.Equal(t, 430.0, result.Freelancer.ProfitPerProject)
	assert.EqualValues(t, 3, result.Freelancer.ProjectsRequired)
	assert.Equal(t, 1380.0, result.Freelancer.TotalCost)

	again, err := CalculateBreakEven(1290, DefaultEconomics())
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestCalculateBreakEven_Errors(t *testing.T) {
	_, err := CalculateBreakEven(0, DefaultEconomics())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = CalculateBreakEven(-5, DefaultEconomics())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = CalculateBreakEven(price, DefaultEconomics())
		assert.ErrorIs(t, err, ErrInvalidPrice, price)
	}

	nonFinite := DefaultEconomics()
	nonFinite.DomainCost = math.Inf(1)
	_, err = CalculateBreakEven(1290, nonFinite)
	assert.ErrorIs(t, err, ErrInvalidEconomics)

	nonFinite = DefaultEconomics()
	nonFinite.RevenuePerProject = math.NaN()
	_, err = CalculateBreakEven(1290, nonFinite)
	assert.ErrorIs(t, err, ErrInvalidEconomics)

	econ := DefaultEconomics()
	econ.RevenuePerProject = 400
	_, err = CalculateBreakEven(1000, econ)
	assert.ErrorIs(t, err, ErrUnprofitable)
}

func TestParseRange(t *testing.T) {
	for _, s := range []string{"", "all", "1m", "3m", "6m", "12m"} {
		_, err := ParseRange(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseRange("2w")
	assert.Error(t, err)
}

func TestFilterProjects(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	recent := &models.Project{Name: "recent", CreatedAt: now.AddDate(0, 0, -10)}
	old := &models.Project{Name: "old", CreatedAt: now.AddDate(-1, 0, 0)}
	finishedRecently := &models.Project{Name: "finished", CreatedAt: now.AddDate(-2, 0, 0)}
	finishedRecently.Complete(now.AddDate(0, -2, 0))

	all := []*models.Project{recent, old, finishedRecently}

	assert.Len(t, FilterProjects(all, RangeAll, now), 3)

	names := func(ps []*models.Project) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"recent"}, names(FilterProjects(all, RangeOneMonth, now)))
	assert.Equal(t, []string{"recent", "finished"}, names(FilterProjects(all, RangeQuarter, now)))
	assert.Equal(t, []string{"recent", "old", "finished"}, names(FilterProjects(all, RangeYear, now)))
}

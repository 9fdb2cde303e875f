package finance

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultRevenuePerProject = 890
	DefaultDomainCost        = 100
	DefaultManagerFee        = 50
	DefaultFreelancerFee     = 310
)

var (
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrUnprofitable     = errors.New("profit per project must be positive to break even")
	ErrInvalidEconomics = errors.New("revenue and costs per project must be finite numbers")
)

// Economics are the per-project figures the calculator works from.
type Economics struct {
	RevenuePerProject float64 `json:"revenuePerProject"`
	DomainCost        float64 `json:"domainCost"`
	ManagerFee        float64 `json:"managerFee"`
	FreelancerFee     float64 `json:"freelancerFee"`
}

func DefaultEconomics() Economics {
	return Economics{
		RevenuePerProject: DefaultRevenuePerProject,
		DomainCost:        DefaultDomainCost,
		ManagerFee:        DefaultManagerFee,
		FreelancerFee:     DefaultFreelancerFee,
	}
}

// Basis is the break-even result for one way of delivering projects.
type Basis struct {
	ProfitPerProject float64 `json:"profitPerProject"`
	ProjectsRequired int64   `json:"projectsRequired"`
	TotalCost        float64 `json:"totalCost"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalProfit      float64 `json:"totalProfit"`
	Margin           float64 `json:"margin"`
}

type BreakEven struct {
	Price      float64   `json:"price"`
	Economics  Economics `json:"economics"`
	InHouse    Basis     `json:"inHouse"`
	Freelancer Basis     `json:"freelancer"`
}

// CalculateBreakEven returns how many projects pay off price when delivered
// in house and through freelancers.
func CalculateBreakEven(price float64, econ Economics) (BreakEven, error) {
	if !finite(price) {
		return BreakEven{}, ErrInvalidPrice
	}
	if !finite(econ.RevenuePerProject, econ.DomainCost, econ.ManagerFee, econ.FreelancerFee) {
		return BreakEven{}, ErrInvalidEconomics
	}

	p := decimal.NewFromFloat(price)
	if !p.IsPositive() {
		return BreakEven{}, ErrInvalidPrice
	}

	domain := decimal.NewFromFloat(econ.DomainCost)
	freelancerCost := domain.
		Add(decimal.NewFromFloat(econ.ManagerFee)).
		Add(decimal.NewFromFloat(econ.FreelancerFee))

	inHouse, err := basis(p, decimal.NewFromFloat(econ.RevenuePerProject), domain)
	if err != nil {
		return BreakEven{}, err
	}
	freelancer, err := basis(p, decimal.NewFromFloat(econ.RevenuePerProject), freelancerCost)
	if err != nil {
		return BreakEven{}, err
	}

	return BreakEven{
		Price:      price,
		Economics:  econ,
		InHouse:    inHouse,
		Freelancer: freelancer,
	}, nil
}

func basis(price, revenue, cost decimal.Decimal) (Basis, error) {
	perProject := revenue.Sub(cost)
	if !perProject.IsPositive() {
		return Basis{}, ErrUnprofitable
	}

	n := price.Div(perProject).Ceil()
	totalCost := n.Mul(cost)
	totalRevenue := n.Mul(revenue)
	totalProfit := totalRevenue.Sub(totalCost)

	return Basis{
		ProfitPerProject: perProject.InexactFloat64(),
		ProjectsRequired: n.IntPart(),
		TotalCost:        totalCost.InexactFloat64(),
		TotalRevenue:     totalRevenue.InexactFloat64(),
		TotalProfit:      totalProfit.InexactFloat64(),
		Margin:           margin(totalProfit, totalRevenue).InexactFloat64(),
	}, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

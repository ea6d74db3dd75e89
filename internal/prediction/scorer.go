package prediction

import (
	"math"
	"sort"
)

var (
	departmentImpacts = map[Department]float64{
		DepartmentSales:       10,
		DepartmentMarketing:   12,
		DepartmentSupport:     15,
		DepartmentOperations:  8,
		DepartmentHR:          6,
		DepartmentFinance:     4,
		DepartmentEngineering: -2,
	}
	overtimeImpacts = map[Overtime]float64{
		OvertimeNever:     5,
		OvertimeRarely:    2,
		OvertimeSometimes: -3,
		OvertimeOften:     -8,
		OvertimeAlways:    10,
	}

	defaultDepartmentImpact float64 = 5
	defaultOvertimeImpact   float64 = 0

	// the perturbation is (u-0.5)*perturbationSpan, u in [0,1)
	perturbationSpan float64 = 10
	baseline         float64 = 50

	lowRiskMax      = 33
	mediumRiskMax   = 66
	layoffThreshold = 60
)

// Scorer turns an EmployeeProfile into a PredictionResult. It is safe for
// concurrent use when its RandomSource is.
type Scorer struct {
	src RandomSource
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithRandomSource replaces the process-wide random source.
func WithRandomSource(src RandomSource) Option {
	return func(s *Scorer) {
		if src != nil {
			s.src = src
		}
	}
}

// NewScorer creates a scorer backed by the process-wide random source
// unless an option overrides it.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{src: DefaultSource()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the six factors, applies one random perturbation and
// classifies the result. It draws from the random source exactly once.
func (s *Scorer) Score(p EmployeeProfile) PredictionResult {
	factors := computeFactors(p)

	score := 0.0
	for _, f := range factors {
		score += f.Impact
	}
	score += (s.src.Float64() - 0.5) * perturbationSpan

	confidence := int(math.Round(clip(score+baseline, 0, 100)))

	sortFactors(factors)

	return PredictionResult{
		WillBeLayedOff: confidence > layoffThreshold,
		Confidence:     confidence,
		RiskLevel:      classify(confidence),
		Factors:        factors,
	}
}

// computeFactors returns the six factors in creation order.
func computeFactors(p EmployeeProfile) []Factor {
	return []Factor{
		newFactor(FactorAge, ageImpact(p.Age)),
		newFactor(FactorDepartment, departmentImpact(p.Department)),
		newFactor(FactorSalary, salaryImpact(p.AnnualSalary)),
		newFactor(FactorPerformance, performanceImpact(p.PerformanceRating)),
		newFactor(FactorTenure, tenureImpact(p.YearsAtCompany)),
		newFactor(FactorOvertime, overtimeImpact(p.Overtime)),
	}
}

// RawScore is the unperturbed sum of the factor impacts.
func RawScore(p EmployeeProfile) float64 {
	total := 0.0
	for _, f := range computeFactors(p) {
		total += f.Impact
	}
	return total
}

func ageImpact(age int) float64 {
	switch {
	case age > 55:
		return 15
	case age < 25:
		return 8
	default:
		return -5
	}
}

func departmentImpact(d Department) float64 {
	if v, ok := departmentImpacts[d]; ok {
		return v
	}
	return defaultDepartmentImpact
}

func salaryImpact(salary float64) float64 {
	switch {
	case salary > 150000:
		return 12
	case salary < 40000:
		return 8
	case salary >= 60000 && salary <= 100000:
		return -8
	default:
		return 2
	}
}

func performanceImpact(rating int) float64 {
	switch {
	case rating >= 4:
		return -20
	case rating == 3:
		return 5
	default:
		return 25
	}
}

func tenureImpact(years float64) float64 {
	switch {
	case years < 1:
		return 18
	case years >= 1 && years <= 3:
		return -5
	case years > 10:
		return 8
	default:
		return -10
	}
}

func overtimeImpact(o Overtime) float64 {
	if v, ok := overtimeImpacts[o]; ok {
		return v
	}
	return defaultOvertimeImpact
}

// classify maps a rounded confidence to its risk level.
func classify(confidence int) RiskLevel {
	switch {
	case confidence <= lowRiskMax:
		return RiskLow
	case confidence <= mediumRiskMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// sortFactors orders by descending absolute impact, keeping creation order
// on ties.
func sortFactors(factors []Factor) {
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Impact) > math.Abs(factors[j].Impact)
	})
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

package prediction

// Factor names, one per scored attribute.
const (
	FactorAge         = "Age Factor"
	FactorDepartment  = "Department Risk"
	FactorSalary      = "Salary Range"
	FactorPerformance = "Performance Rating"
	FactorTenure      = "Company Tenure"
	FactorOvertime    = "Overtime Frequency"
)

// Factor is a named, signed contribution to the risk score in percentage
// points. IsPositive marks risk-reducing factors (Impact < 0).
type Factor struct {
	Name       string  `json:"name"`
	Impact     float64 `json:"impact"`
	IsPositive bool    `json:"isPositive"`
}

func newFactor(name string, impact float64) Factor {
	return Factor{Name: name, Impact: impact, IsPositive: impact < 0}
}

// RiskLevel is the three-tier bucket derived from confidence.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Summary is the one-line assessment shown next to the risk badge.
func (r RiskLevel) Summary() string {
	switch r {
	case RiskLow:
		return "Employee shows strong job security indicators."
	case RiskMedium:
		return "Employee may need attention to improve job security."
	case RiskHigh:
		return "Employee requires immediate attention and support."
	default:
		return ""
	}
}

// Valid reports whether r is one of the three known levels.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// PredictionResult is the output of the scoring stage.
type PredictionResult struct {
	WillBeLayedOff bool      `json:"willBeLayedOff"`
	Confidence     int       `json:"confidence"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	Factors        []Factor  `json:"factors"`
}

// Outcome is the headline label for the result.
func (r PredictionResult) Outcome() string {
	if r.WillBeLayedOff {
		return "At Risk"
	}
	return "Safe"
}

// Factor returns the factor with the given name.
func (r PredictionResult) Factor(name string) (Factor, bool) {
	for _, f := range r.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// Priority ranks a recommendation. There is no low priority.
type Priority string

const (
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Recommendation is a remediation suggestion derived from a result.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

package prediction

// recommendationRule inspects a result and returns the recommendations it
// produces, if any.
type recommendationRule func(r PredictionResult) []Recommendation

// rules run in this order; every matching rule contributes.
var recommendationRules = []recommendationRule{
	rulePerformance,
	ruleDepartment,
	ruleTenure,
	ruleSalary,
	ruleRiskLevel,
}

var (
	recPerformancePlan = Recommendation{
		Title:       "Performance Improvement Plan",
		Description: "Agree measurable goals with the employee's manager and schedule regular check-ins to lift the performance rating.",
		Priority:    PriorityHigh,
	}
	recCrossTraining = Recommendation{
		Title:       "Cross-Department Training",
		Description: "Build skills that transfer to lower-volatility departments to reduce exposure to department-level cuts.",
		Priority:    PriorityMedium,
	}
	recOnboarding = Recommendation{
		Title:       "Onboarding & Mentorship",
		Description: "Pair the employee with a senior mentor and complete a structured onboarding plan to accelerate integration.",
		Priority:    PriorityHigh,
	}
	recCareerPath = Recommendation{
		Title:       "Career Development Path",
		Description: "Define a development plan with clear milestones so the employee's tenure translates into growing value.",
		Priority:    PriorityMedium,
	}
	recCompensation = Recommendation{
		Title:       "Compensation Review",
		Description: "Benchmark the salary against the market and role expectations to align cost with contribution.",
		Priority:    PriorityMedium,
	}
	recImmediate = Recommendation{
		Title:       "Immediate Intervention Required",
		Description: "Escalate to HR and leadership now to discuss retention options and a support plan.",
		Priority:    PriorityCritical,
	}
	recProactive = Recommendation{
		Title:       "Proactive Engagement",
		Description: "Hold a career conversation soon to address the risk factors before they escalate.",
		Priority:    PriorityMedium,
	}
)

// tenure impacts above this magnitude call for onboarding rather than a
// development path
const onboardingTenureImpact = 15

// Recommend derives the remediation list for a result. It is pure; the
// returned slice is never nil.
func Recommend(r PredictionResult) []Recommendation {
	recs := make([]Recommendation, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		recs = append(recs, rule(r)...)
	}
	return recs
}

// riskIncreasing reports whether the named factor exists and is not
// risk-reducing.
func riskIncreasing(r PredictionResult, name string) (Factor, bool) {
	f, ok := r.Factor(name)
	if !ok || f.IsPositive {
		return Factor{}, false
	}
	return f, true
}

func rulePerformance(r PredictionResult) []Recommendation {
	if _, ok := riskIncreasing(r, FactorPerformance); ok {
		return []Recommendation{recPerformancePlan}
	}
	return nil
}

func ruleDepartment(r PredictionResult) []Recommendation {
	if _, ok := riskIncreasing(r, FactorDepartment); ok {
		return []Recommendation{recCrossTraining}
	}
	return nil
}

func ruleTenure(r PredictionResult) []Recommendation {
	f, ok := riskIncreasing(r, FactorTenure)
	if !ok {
		return nil
	}
	if abs(f.Impact) > onboardingTenureImpact {
		return []Recommendation{recOnboarding}
	}
	return []Recommendation{recCareerPath}
}

func ruleSalary(r PredictionResult) []Recommendation {
	if _, ok := riskIncreasing(r, FactorSalary); ok {
		return []Recommendation{recCompensation}
	}
	return nil
}

func ruleRiskLevel(r PredictionResult) []Recommendation {
	switch r.RiskLevel {
	case RiskHigh:
		return []Recommendation{recImmediate}
	case RiskMedium:
		return []Recommendation{recProactive}
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package prediction

// Choice is a selectable value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Departments lists the recognised departments.
func Departments() []Choice {
	return []Choice{
		{Value: string(DepartmentEngineering), Label: "Engineering"},
		{Value: string(DepartmentSales), Label: "Sales"},
		{Value: string(DepartmentMarketing), Label: "Marketing"},
		{Value: string(DepartmentHR), Label: "Human Resources"},
		{Value: string(DepartmentFinance), Label: "Finance"},
		{Value: string(DepartmentOperations), Label: "Operations"},
		{Value: string(DepartmentSupport), Label: "Customer Support"},
	}
}

// OvertimeFrequencies lists the recognised overtime answers.
func OvertimeFrequencies() []Choice {
	return []Choice{
		{Value: string(OvertimeNever), Label: "Never"},
		{Value: string(OvertimeRarely), Label: "Rarely"},
		{Value: string(OvertimeSometimes), Label: "Sometimes"},
		{Value: string(OvertimeOften), Label: "Often"},
		{Value: string(OvertimeAlways), Label: "Always"},
	}
}

// PerformanceRatings lists the 1-5 rating scale.
func PerformanceRatings() []Choice {
	return []Choice{
		{Value: "1", Label: "1 - Needs Improvement"},
		{Value: "2", Label: "2 - Below Average"},
		{Value: "3", Label: "3 - Average"},
		{Value: "4", Label: "4 - Above Average"},
		{Value: "5", Label: "5 - Excellent"},
	}
}

// FactorNames lists the factor names in creation order.
func FactorNames() []string {
	return []string{FactorAge, FactorDepartment, FactorSalary, FactorPerformance, FactorTenure, FactorOvertime}
}

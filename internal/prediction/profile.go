package prediction

import (
	"math"
	"strconv"
	"strings"
)

// Department is the organisational unit an employee belongs to. Values
// outside the known set are kept as-is and scored with the default impact.
type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentSales       Department = "sales"
	DepartmentMarketing   Department = "marketing"
	DepartmentHR          Department = "hr"
	DepartmentFinance     Department = "finance"
	DepartmentOperations  Department = "operations"
	DepartmentSupport     Department = "support"
)

// Overtime is how often an employee works beyond contracted hours.
type Overtime string

const (
	OvertimeNever     Overtime = "never"
	OvertimeRarely    Overtime = "rarely"
	OvertimeSometimes Overtime = "sometimes"
	OvertimeOften     Overtime = "often"
	OvertimeAlways    Overtime = "always"
)

// EmployeeProfile is the typed input to the scoring stage.
type EmployeeProfile struct {
	Age               int        `json:"age"`
	Department        Department `json:"department"`
	JobRole           string     `json:"jobRole"`
	AnnualSalary      float64    `json:"salary"`
	Overtime          Overtime   `json:"overtime"`
	PerformanceRating int        `json:"performanceRating"`
	YearsAtCompany    float64    `json:"yearsAtCompany"`
}

// RawProfile carries the seven attributes as the form submits them.
type RawProfile struct {
	Age               string
	Department        string
	JobRole           string
	Salary            string
	Overtime          string
	PerformanceRating string
	YearsAtCompany    string
}

// Field names used in validation errors; they match the JSON keys.
const (
	FieldAge               = "age"
	FieldDepartment        = "department"
	FieldJobRole           = "jobRole"
	FieldSalary            = "salary"
	FieldOvertime          = "overtime"
	FieldPerformanceRating = "performanceRating"
	FieldYearsAtCompany    = "yearsAtCompany"
)

// ParseProfile converts raw form values into an EmployeeProfile. Numeric
// fields that are not finite numbers fail with a *ValidationError naming the
// field. Enum values are normalised but never rejected.
func ParseProfile(raw RawProfile) (EmployeeProfile, error) {
	age, err := parseInt(FieldAge, raw.Age)
	if err != nil {
		return EmployeeProfile{}, err
	}
	salary, err := parseNumber(FieldSalary, raw.Salary)
	if err != nil {
		return EmployeeProfile{}, err
	}
	rating, err := parseInt(FieldPerformanceRating, raw.PerformanceRating)
	if err != nil {
		return EmployeeProfile{}, err
	}
	tenure, err := parseNumber(FieldYearsAtCompany, raw.YearsAtCompany)
	if err != nil {
		return EmployeeProfile{}, err
	}

	return EmployeeProfile{
		Age:               age,
		Department:        Department(normalise(raw.Department)),
		JobRole:           strings.TrimSpace(raw.JobRole),
		AnnualSalary:      salary,
		Overtime:          Overtime(normalise(raw.Overtime)),
		PerformanceRating: rating,
		YearsAtCompany:    tenure,
	}, nil
}

// Validate checks the plausible ranges the input form enforces. Score does
// not call it; callers run it before scoring.
func (p EmployeeProfile) Validate() error {
	var errs ValidationErrors
	if p.Age < 18 || p.Age > 70 {
		errs = append(errs, &ValidationError{Field: FieldAge, Value: strconv.Itoa(p.Age), Reason: "must be between 18 and 70"})
	}
	if strings.TrimSpace(p.JobRole) == "" {
		errs = append(errs, &ValidationError{Field: FieldJobRole, Reason: "is required"})
	}
	if p.AnnualSalary < 0 {
		errs = append(errs, &ValidationError{Field: FieldSalary, Value: formatFloat(p.AnnualSalary), Reason: "must not be negative"})
	}
	if p.PerformanceRating < 1 || p.PerformanceRating > 5 {
		errs = append(errs, &ValidationError{Field: FieldPerformanceRating, Value: strconv.Itoa(p.PerformanceRating), Reason: "must be between 1 and 5"})
	}
	if p.YearsAtCompany < 0 {
		errs = append(errs, &ValidationError{Field: FieldYearsAtCompany, Value: formatFloat(p.YearsAtCompany), Reason: "must not be negative"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func parseNumber(field, value string) (float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, &ValidationError{Field: field, Value: value, Reason: "is required"}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must be a number"}
	}
	return f, nil
}

func parseInt(field, value string) (int, error) {
	f, err := parseNumber(field, value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, &ValidationError{Field: field, Value: value, Reason: "must be a whole number"}
	}
	return int(f), nil
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

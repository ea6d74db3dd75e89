package prediction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawProfile {
	return RawProfile{
		Age:               "30",
		Department:        "engineering",
		JobRole:           "Software Engineer",
		Salary:            "80000",
		Overtime:          "often",
		PerformanceRating: "5",
		YearsAtCompany:    "2",
	}
}

func TestParseProfile(t *testing.T) {
	raw := validRaw()
	raw.Department = "  Engineering "
	raw.Overtime = "OFTEN"
	raw.YearsAtCompany = "2.5"

	p, err := ParseProfile(raw)
	require.NoError(t, err)

	assert.Equal(t, EmployeeProfile{
		Age:               30,
		Department:        DepartmentEngineering,
		JobRole:           "Software Engineer",
		AnnualSalary:      80000,
		Overtime:          OvertimeOften,
		PerformanceRating: 5,
		YearsAtCompany:    2.5,
	}, p)
}

func TestParseProfile_KeepsUnknownEnums(t *testing.T) {
	raw := validRaw()
	raw.Department = "legal"
	raw.Overtime = "weekends"

	p, err := ParseProfile(raw)
	require.NoError(t, err)

	assert.Equal(t, Department("legal"), p.Department)
	assert.Equal(t, Overtime("weekends"), p.Overtime)
}

func TestParseProfile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *RawProfile)
		field  string
		reason string
	}{
		{name: "non-numeric age", mutate: func(r *RawProfile) { r.Age = "thirty" }, field: FieldAge, reason: "must be a number"},
		{name: "fractional age", mutate: func(r *RawProfile) { r.Age = "30.5" }, field: FieldAge, reason: "must be a whole number"},
		{name: "empty salary", mutate: func(r *RawProfile) { r.Salary = "  " }, field: FieldSalary, reason: "is required"},
		{name: "NaN salary", mutate: func(r *RawProfile) { r.Salary = "NaN" }, field: FieldSalary, reason: "must be a number"},
		{name: "infinite tenure", mutate: func(r *RawProfile) { r.YearsAtCompany = "Inf" }, field: FieldYearsAtCompany, reason: "must be a number"},
		{name: "fractional rating", mutate: func(r *RawProfile) { r.PerformanceRating = "4.5" }, field: FieldPerformanceRating, reason: "must be a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, err := ParseProfile(raw)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate(t *testing.T) {
	p, err := ParseProfile(validRaw())
	require.NoError(t, err)
	assert.NoError(t, p.Validate())

	bad := EmployeeProfile{Age: 17, AnnualSalary: -1, PerformanceRating: 6, YearsAtCompany: -0.5}
	err = bad.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.Fields()
	assert.Len(t, fields, 5)
	assert.Contains(t, fields, FieldAge)
	assert.Contains(t, fields, FieldJobRole)
	assert.Contains(t, fields, FieldSalary)
	assert.Contains(t, fields, FieldPerformanceRating)
	assert.Contains(t, fields, FieldYearsAtCompany)
	assert.Contains(t, err.Error(), "age must be between 18 and 70")
}

func TestValidate_RangeEdges(t *testing.T) {
	base := EmployeeProfile{Age: 18, JobRole: "Analyst", AnnualSalary: 0, PerformanceRating: 1, YearsAtCompany: 0}
	assert.NoError(t, base.Validate())

	base.Age = 70
	base.PerformanceRating = 5
	assert.NoError(t, base.Validate())

	base.Age = 71
	assert.Error(t, base.Validate())
}

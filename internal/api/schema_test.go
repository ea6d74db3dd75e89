package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchema(t *testing.T) {
	for _, name := range []string{"profile", "prediction"} {
		s, err := LoadSchema(name)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}

	_, err := LoadSchema("missing")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoadSchema("missing") })
}

func TestSchemaValidate(t *testing.T) {
	s := MustLoadSchema("profile")

	fields, err := s.Validate([]byte(`{
		"age": 30, "department": "sales", "jobRole": "AE", "salary": "50000",
		"overtime": "never", "performanceRating": "3", "yearsAtCompany": 1.5
	}`))
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = s.Validate([]byte(`{"age": true, "jobRole": "AE"}`))
	require.NoError(t, err)
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "department")
	assert.Contains(t, fields, "yearsAtCompany")
	assert.NotContains(t, fields, "jobRole")

	_, err = s.Validate([]byte(`{"age":`))
	assert.Error(t, err)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentValid(t *testing.T) {
	for _, d := range Departments {
		assert.True(t, d.Valid(), d)
	}
	assert.False(t, Department("engineering").Valid())
	assert.False(t, Department("").Valid())
}

func TestNormalize(t *testing.T) {
	in := EmployeeInput{
		Name:   "  John Doe ",
		Email:  " John.DOE@Company.com ",
		Salary: " 75000 ",
	}
	in.Normalize()

	assert.Equal(t, "John Doe", in.Name)
	assert.Equal(t, "john.doe@company.com", in.Email)
	assert.Equal(t, "75000", in.Salary.String())
}

func TestParseHireDate(t *testing.T) {
	d, err := ParseHireDate("2023-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseHireDate("2023-01-15T18:30:00-08:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseHireDate("15/01/2023")
	assert.Error(t, err)
}

func TestToEmployeeAndBack(t *testing.T) {
	in := EmployeeInput{
		Name:       "John Smith",
		Email:      "john.smith@company.com",
		Phone:      "(555) 123-4567",
		Department: "Engineering",
		Position:   "Software Developer",
		HireDate:   "2023-01-15",
		Salary:     "75000.5",
		Address:    "123 Main St",
	}

	e, err := in.ToEmployee()
	require.NoError(t, err)
	assert.Equal(t, DepartmentEngineering, e.Department)
	assert.Equal(t, 75000.5, e.Salary)
	assert.Empty(t, e.ID)

	assert.Equal(t, in, InputFromEmployee(e))
}

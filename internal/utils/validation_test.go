package utils

import (
	"testing"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *EmployeeValidator {
	t.Helper()
	v, err := NewEmployeeValidator(WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return v
}

func validInput() domain.EmployeeInput {
	return domain.EmployeeInput{
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "1234567890",
		Department: "HR",
		Position:   "Clerk",
		HireDate:   "2024-01-01",
		Salary:     "50000",
	}
}

func TestEmployeeValidator_Valid(t *testing.T) {
	v := newValidator(t)

	in := validInput()
	assert.NoError(t, v.Validate(&in))

	for _, phone := range []string{"(555) 123-4567", "555-123-4567", "5551234567"} {
		in.Phone = phone
		assert.NoError(t, v.Validate(&in), phone)
	}

	in.HireDate = "2024-06-01"
	in.Salary = "0"
	assert.NoError(t, v.Validate(&in), "today and zero salary are allowed")
}

func TestEmployeeValidator_Invalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		mutate  func(in *domain.EmployeeInput)
		field   string
		message string
	}{
		{"missing name", func(in *domain.EmployeeInput) { in.Name = "" }, "name", "Name is required"},
		{"bad email", func(in *domain.EmployeeInput) { in.Email = "a@" }, "email", "Please enter a valid email address"},
		{"bad phone", func(in *domain.EmployeeInput) { in.Phone = "555 123 4567" }, "phone", "Please enter a valid phone number"},
		{"missing phone", func(in *domain.EmployeeInput) { in.Phone = "" }, "phone", "Phone number is required"},
		{"unknown department", func(in *domain.EmployeeInput) { in.Department = "Legal" }, "department", "Department must be one of HR, Engineering, Marketing, Sales, Finance, Operations"},
		{"bad date", func(in *domain.EmployeeInput) { in.HireDate = "01/02/2024" }, "hireDate", "Please enter a valid hire date"},
		{"future date", func(in *domain.EmployeeInput) { in.HireDate = "2024-06-02" }, "hireDate", "Hire date cannot be in the future"},
		{"negative salary", func(in *domain.EmployeeInput) { in.Salary = "-1" }, "salary", "Please enter a valid salary amount"},
		{"text salary", func(in *domain.EmployeeInput) { in.Salary = "lots" }, "salary", "Please enter a valid salary amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := v.Validate(&in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Errors, 1)

			msg, ok := verr.Field(tt.field)
			assert.True(t, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestEmployeeValidator_ReportsEveryField(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(&domain.EmployeeInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"name", "email", "phone", "department", "position", "hireDate", "salary"}, fields)
}

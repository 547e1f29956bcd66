package directory

import (
	"testing"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/seed"
	"github.com/stretchr/testify/assert"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	d := BuildDashboard(seed.StandardEmployees(), now)

	assert.Equal(t, 6, d.Total)
	assert.Equal(t, 6, d.Departments)
	assert.Equal(t, 1, d.RecentHires)
	assert.Equal(t, []string{"EMP003", "EMP005", "EMP001", "EMP006", "EMP004"}, ids(d.Recent))

	assert.Equal(t, DepartmentCount{Department: domain.DepartmentEngineering, Count: 1}, d.ByDepartment[0])
}

func TestBuildDashboard_CountsPerDepartment(t *testing.T) {
	hire := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	employees := []*domain.Employee{
		{ID: "1", Department: domain.DepartmentSales, HireDate: hire},
		{ID: "2", Department: domain.DepartmentHR, HireDate: hire.AddDate(-1, 0, 0)},
		{ID: "3", Department: domain.DepartmentSales, HireDate: hire.AddDate(0, 0, -40)},
	}

	d := BuildDashboard(employees, testNow)

	assert.Equal(t, 3, d.Total)
	assert.Equal(t, 2, d.Departments)
	assert.Equal(t, 1, d.RecentHires)
	assert.Equal(t, []DepartmentCount{
		{Department: domain.DepartmentSales, Count: 2},
		{Department: domain.DepartmentHR, Count: 1},
	}, d.ByDepartment)
	assert.Equal(t, []string{"1", "3", "2"}, ids(d.Recent))
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil, testNow)

	assert.Zero(t, d.Total)
	assert.Zero(t, d.Departments)
	assert.Zero(t, d.RecentHires)
	assert.Empty(t, d.Recent)
}

package directory

import (
	"testing"

	"github.com/Govind-Kandale-1/3Tier-website/internal/seed"
	"github.com/stretchr/testify/assert"
)

func TestSortState_Toggle(t *testing.T) {
	var s SortState

	s.Toggle(SortBySalary)
	assert.Equal(t, SortState{Column: SortBySalary, Direction: Ascending}, s)

	s.Toggle(SortBySalary)
	assert.Equal(t, Descending, s.Direction)

	s.Toggle(SortBySalary)
	assert.Equal(t, Ascending, s.Direction)

	s.Toggle(SortByName)
	assert.Equal(t, SortState{Column: SortByName, Direction: Ascending}, s)
}

func TestProject_SalarySortReverses(t *testing.T) {
	employees := seed.StandardEmployees()

	var s SortState
	s.Toggle(SortBySalary)
	asc := ids(Project(employees, Query{Sort: s}))
	assert.Equal(t, []string{"EMP003", "EMP004", "EMP002", "EMP005", "EMP001", "EMP006"}, asc)

	s.Toggle(SortBySalary)
	desc := ids(Project(employees, Query{Sort: s}))
	assert.Equal(t, []string{"EMP006", "EMP001", "EMP005", "EMP002", "EMP004", "EMP003"}, desc)
}

func TestProject_DepartmentFilter(t *testing.T) {
	employees := seed.StandardEmployees()

	visible := Project(employees, Query{Department: "Engineering"})
	assert.Equal(t, []string{"EMP001"}, ids(visible))

	// 部门筛选是精确匹配
	assert.Empty(t, Project(employees, Query{Department: "engineering"}))
}

func TestProject_SearchMatchesNameOrDepartment(t *testing.T) {
	employees := seed.StandardEmployees()

	assert.Equal(t, []string{"EMP002"}, ids(Project(employees, Query{Search: "SARAH"})))
	assert.Equal(t, []string{"EMP002"}, ids(Project(employees, Query{Search: "market"})))
	// 邮箱不参与搜索
	assert.Empty(t, Project(employees, Query{Search: "company.com"}))
	assert.Empty(t, Project(employees, Query{Search: "sarah", Department: "HR"}))
	assert.Len(t, Project(employees, Query{}), 6)
}

func TestProject_TextAndDateSorts(t *testing.T) {
	employees := seed.StandardEmployees()

	byName := ids(Project(employees, Query{Sort: SortState{Column: SortByName, Direction: Ascending}}))
	assert.Equal(t, []string{"EMP005", "EMP004", "EMP001", "EMP006", "EMP003", "EMP002"}, byName)

	byHire := ids(Project(employees, Query{Sort: SortState{Column: SortByHireDate, Direction: Ascending}}))
	assert.Equal(t, []string{"EMP002", "EMP004", "EMP006", "EMP001", "EMP005", "EMP003"}, byHire)
}

func TestProject_TiesKeepStoreOrder(t *testing.T) {
	employees := seed.StandardEmployees()
	for _, e := range employees {
		e.Salary = 50000
	}

	got := ids(Project(employees, Query{Sort: SortState{Column: SortBySalary, Direction: Descending}}))
	assert.Equal(t, []string{"EMP001", "EMP002", "EMP003", "EMP004", "EMP005", "EMP006"}, got)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	employees := seed.StandardEmployees()
	Project(employees, Query{Sort: SortState{Column: SortBySalary, Direction: Descending}})
	assert.Equal(t, "EMP001", employees[0].ID)
}

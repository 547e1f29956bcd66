package directory

import (
	"sort"
	"strings"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

type SortColumn string

const (
	SortByID         SortColumn = "id"
	SortByName       SortColumn = "name"
	SortByEmail      SortColumn = "email"
	SortByDepartment SortColumn = "department"
	SortByPosition   SortColumn = "position"
	SortByHireDate   SortColumn = "hireDate"
	SortBySalary     SortColumn = "salary"
)

var SortColumns = []SortColumn{SortByID, SortByName, SortByEmail, SortByDepartment, SortByPosition, SortByHireDate, SortBySalary}

func (c SortColumn) Valid() bool {
	for _, col := range SortColumns {
		if c == col {
			return true
		}
	}
	return false
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortState 的零值表示不排序
type SortState struct {
	Column    SortColumn
	Direction SortDirection
}

// Toggle 重复点击同一列时切换升降序，点击新列时从升序开始
func (s *SortState) Toggle(column SortColumn) {
	if s.Column == column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return
	}
	s.Column = column
	s.Direction = Ascending
}

type Query struct {
	Search     string
	Department string
	Sort       SortState
}

// Project 按搜索词和部门过滤后排序，返回新的切片，不修改输入
func Project(employees []*domain.Employee, q Query) []*domain.Employee {
	search := strings.ToLower(q.Search)

	visible := make([]*domain.Employee, 0, len(employees))
	for _, e := range employees {
		matchesSearch := strings.Contains(strings.ToLower(e.Name), search) ||
			strings.Contains(strings.ToLower(string(e.Department)), search)
		matchesDepartment := q.Department == "" || string(e.Department) == q.Department
		if matchesSearch && matchesDepartment {
			visible = append(visible, e)
		}
	}

	if q.Sort.Column == "" {
		return visible
	}

	desc := q.Sort.Direction == Descending
	sort.SliceStable(visible, func(i, j int) bool {
		c := compare(visible[i], visible[j], q.Sort.Column)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return visible
}

func compare(a, b *domain.Employee, column SortColumn) int {
	switch column {
	case SortBySalary:
		switch {
		case a.Salary < b.Salary:
			return -1
		case a.Salary > b.Salary:
			return 1
		}
		return 0
	case SortByHireDate:
		return a.HireDate.Compare(b.HireDate)
	default:
		return strings.Compare(strings.ToLower(textValue(a, column)), strings.ToLower(textValue(b, column)))
	}
}

func textValue(e *domain.Employee, column SortColumn) string {
	switch column {
	case SortByID:
		return e.ID
	case SortByName:
		return e.Name
	case SortByEmail:
		return e.Email
	case SortByDepartment:
		return string(e.Department)
	case SortByPosition:
		return e.Position
	}
	return ""
}

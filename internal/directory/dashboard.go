package directory

import (
	"sort"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

const (
	recentHireWindow = 30 * 24 * time.Hour
	recentListSize   = 5
)

type DepartmentCount struct {
	Department domain.Department
	Count      int
}

type Dashboard struct {
	Total       int
	Departments int
	// 最近 30 天入职的人数
	RecentHires  int
	ByDepartment []DepartmentCount
	// 按入职日期倒序的前五名
	Recent []*domain.Employee
}

func BuildDashboard(employees []*domain.Employee, now time.Time) Dashboard {
	d := Dashboard{Total: len(employees)}

	cutoff := now.Add(-recentHireWindow)
	index := make(map[domain.Department]int)
	for _, e := range employees {
		if !e.HireDate.Before(cutoff) {
			d.RecentHires++
		}

		// 部门按第一次出现的顺序排列
		i, ok := index[e.Department]
		if !ok {
			i = len(d.ByDepartment)
			index[e.Department] = i
			d.ByDepartment = append(d.ByDepartment, DepartmentCount{Department: e.Department})
		}
		d.ByDepartment[i].Count++
	}
	d.Departments = len(d.ByDepartment)

	recent := make([]*domain.Employee, len(employees))
	copy(recent, employees)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].HireDate.After(recent[j].HireDate)
	})
	if len(recent) > recentListSize {
		recent = recent[:recentListSize]
	}
	d.Recent = recent

	return d
}

package domain

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentEngineering Department = "Engineering"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
)

// Departments 按表单下拉框的顺序排列
var Departments = []Department{
	DepartmentHR,
	DepartmentEngineering,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentFinance,
	DepartmentOperations,
}

func (d Department) Valid() bool {
	for _, dep := range Departments {
		if d == dep {
			return true
		}
	}
	return false
}

type Employee struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Department Department `json:"department"`
	Position   string     `json:"position"`
	HireDate   time.Time  `json:"hireDate"`
	Salary     float64    `json:"salary"`
	Address    string     `json:"address,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// DateLayout 是表单和接口中日期的格式
const DateLayout = "2006-01-02"

// EmployeeInput 是创建和更新员工时提交的完整字段，服务端和客户端共用同一套校验规则
type EmployeeInput struct {
	Name       string      `json:"name" label:"Name" validate:"required"`
	Email      string      `json:"email" label:"Email" validate:"required,email"`
	Phone      string      `json:"phone" label:"Phone number" validate:"required,phone"`
	Department string      `json:"department" label:"Department" validate:"required,department"`
	Position   string      `json:"position" label:"Position" validate:"required"`
	HireDate   string      `json:"hireDate" label:"Hire date" validate:"required,hiredate,notfuture"`
	Salary     json.Number `json:"salary" label:"Salary" validate:"required,salary"`
	Address    string      `json:"address" label:"Address"`
}

// Normalize 去掉首尾空格，并把邮箱转为小写
func (in *EmployeeInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Department = strings.TrimSpace(in.Department)
	in.Position = strings.TrimSpace(in.Position)
	in.HireDate = strings.TrimSpace(in.HireDate)
	in.Salary = json.Number(strings.TrimSpace(string(in.Salary)))
	in.Address = strings.TrimSpace(in.Address)
}

// ParseHireDate 接受 2006-01-02 或 RFC 3339 格式
func ParseHireDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid hire date")
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ToEmployee 把已经通过校验的输入转换为员工记录，不设置 ID 和时间戳
func (in *EmployeeInput) ToEmployee() (*Employee, error) {
	hireDate, err := ParseHireDate(in.HireDate)
	if err != nil {
		return nil, err
	}
	salary, err := strconv.ParseFloat(string(in.Salary), 64)
	if err != nil {
		return nil, err
	}

	return &Employee{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Department: Department(in.Department),
		Position:   in.Position,
		HireDate:   hireDate,
		Salary:     salary,
		Address:    in.Address,
	}, nil
}

// InputFromEmployee 用已有记录填充编辑表单
func InputFromEmployee(e *Employee) EmployeeInput {
	return EmployeeInput{
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: string(e.Department),
		Position:   e.Position,
		HireDate:   e.HireDate.Format(DateLayout),
		Salary:     json.Number(strconv.FormatFloat(e.Salary, 'f', -1, 64)),
		Address:    e.Address,
	}
}

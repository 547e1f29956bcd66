package directory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
)

const msgEmailInUse = "This email address is already in use"

// Store 持有客户端的员工列表，所有界面都从这里读取数据
type Store struct {
	mu        sync.RWMutex
	backend   Backend
	validator *utils.EmployeeValidator
	employees []*domain.Employee
}

func NewStore(backend Backend, validator *utils.EmployeeValidator) *Store {
	return &Store{
		backend:   backend,
		validator: validator,
		employees: make([]*domain.Employee, 0),
	}
}

// Load 从 backend 重新拉取完整列表
func (s *Store) Load(ctx context.Context) error {
	employees, err := s.backend.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.employees = employees
	s.mu.Unlock()
	return nil
}

// Employees 返回当前列表的快照
func (s *Store) Employees() []*domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*domain.Employee, len(s.employees))
	copy(employees, s.employees)
	return employees
}

func (s *Store) Find(id string) (*domain.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Validate 执行和服务端相同的校验，再检查邮箱是否和其他员工重复
func (s *Store) Validate(in *domain.EmployeeInput, exceptID string) error {
	in.Normalize()

	var verr *domain.ValidationError
	if err := s.validator.Validate(in); err != nil && !errors.As(err, &verr) {
		return err
	}

	if in.Email != "" && s.emailTaken(in.Email, exceptID) {
		if verr == nil {
			verr = &domain.ValidationError{}
		}
		verr.Add("email", msgEmailInUse)
	}

	if verr != nil {
		return verr
	}
	return nil
}

func (s *Store) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	if err := s.Validate(&in, ""); err != nil {
		return nil, err
	}

	employee, err := s.backend.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.employees = append(s.employees, employee)
	s.mu.Unlock()
	return employee, nil
}

func (s *Store) Update(ctx context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	if err := s.Validate(&in, id); err != nil {
		return nil, err
	}

	employee, err := s.backend.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.employees {
		if e.ID == id {
			s.employees[i] = employee
			return employee, nil
		}
	}
	// 本地列表过期时追加到末尾
	s.employees = append(s.employees, employee)
	return employee, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.employees {
		if e.ID == id {
			s.employees = append(s.employees[:i:i], s.employees[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) emailTaken(email, exceptID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

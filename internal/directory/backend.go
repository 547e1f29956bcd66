package directory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/seed"
)

// Backend 是 Store 的数据来源，client.Client 和 MemoryBackend 都实现了它
type Backend interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}

// MemoryBackend 是离线模式使用的内存存储，ID 形如 EMP001
type MemoryBackend struct {
	mu        sync.Mutex
	employees []*domain.Employee
	now       func() time.Time
}

// NewMemoryBackend 预置 EMP001 到 EMP006 六名员工
func NewMemoryBackend() *MemoryBackend {
	return NewMemoryBackendWith(seed.StandardEmployees())
}

func NewMemoryBackendWith(employees []*domain.Employee) *MemoryBackend {
	b := &MemoryBackend{now: func() time.Time { return time.Now().UTC() }}
	for _, e := range employees {
		b.employees = append(b.employees, clone(e))
	}
	return b
}

func (b *MemoryBackend) List(context.Context) ([]*domain.Employee, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	employees := make([]*domain.Employee, 0, len(b.employees))
	for _, e := range b.employees {
		employees = append(employees, clone(e))
	}
	return employees, nil
}

func (b *MemoryBackend) Create(_ context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := in.ToEmployee()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.emailTaken(employee.Email, "") {
		return nil, domain.NewValidationError("email", "Email already exists")
	}

	now := b.now()
	employee.ID = b.nextID()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	b.employees = append(b.employees, employee)

	return clone(employee), nil
}

func (b *MemoryBackend) Update(_ context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := in.ToEmployee()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	if b.emailTaken(employee.Email, id) {
		return nil, domain.NewValidationError("email", "Email already exists")
	}

	employee.ID = id
	employee.CreatedAt = b.employees[i].CreatedAt
	employee.UpdatedAt = b.now()
	b.employees[i] = employee

	return clone(employee), nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return domain.ErrEmployeeNotFound
	}
	b.employees = append(b.employees[:i], b.employees[i+1:]...)
	return nil
}

// NextID 返回下一个新员工会分配到的 ID
func (b *MemoryBackend) NextID() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.nextID()
}

// nextID 取现有编号的最大值加一，编号无法解析的记录不参与计算
func (b *MemoryBackend) nextID() string {
	max := 0
	for _, e := range b.employees {
		n, err := strconv.Atoi(strings.TrimPrefix(e.ID, "EMP"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("EMP%03d", max+1)
}

func (b *MemoryBackend) indexOf(id string) int {
	for i, e := range b.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (b *MemoryBackend) emailTaken(email, exceptID string) bool {
	for _, e := range b.employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

func clone(e *domain.Employee) *domain.Employee {
	c := *e
	return &c
}

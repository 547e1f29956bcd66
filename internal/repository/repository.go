package repository

import (
	"context"
	"errors"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

// EmployeeRepository 是员工集合的存储接口。
// 实现需要把后端的错误转换为 ErrNotFound 和 ErrDuplicateEmail。
type EmployeeRepository interface {
	// List 按创建时间倒序返回所有员工
	List(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	// Create 写入后回填 ID、CreatedAt 和 UpdatedAt
	Create(ctx context.Context, employee *domain.Employee) error
	// Update 按 ID 整体替换除 ID 和 CreatedAt 以外的字段，并回填存储中的最新记录
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

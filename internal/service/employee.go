package service

import (
	"context"
	"errors"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/repository"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
)

const msgEmailExists = "Email already exists"

// EmployeeService 负责写入前的规范化和校验，并把存储层错误转换为领域错误
type EmployeeService struct {
	repo      repository.EmployeeRepository
	validator *utils.EmployeeValidator
	publisher Publisher
}

// NewEmployeeService 创建服务，publisher 为 nil 时不发送欢迎邮件
func NewEmployeeService(repo repository.EmployeeRepository, validator *utils.EmployeeValidator, publisher Publisher) *EmployeeService {
	if publisher == nil {
		publisher = NopPublisher{}
	}

	return &EmployeeService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := s.prepare(&in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domain.NewValidationError("email", msgEmailExists)
		}
		return nil, err
	}

	s.sendWelcomeMail(ctx, employee)

	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := s.prepare(&in)
	if err != nil {
		return nil, err
	}
	employee.ID = id

	if err := s.repo.Update(ctx, employee); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, domain.ErrEmployeeNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, domain.NewValidationError("email", msgEmailExists)
		default:
			return nil, err
		}
	}

	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

func (s *EmployeeService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *EmployeeService) prepare(in *domain.EmployeeInput) (*domain.Employee, error) {
	in.Normalize()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	return in.ToEmployee()
}

func (s *EmployeeService) sendWelcomeMail(ctx context.Context, employee *domain.Employee) {
	msg := domain.MailMessage{
		Type: domain.MailTypeWelcomeEmployee,
		To:   employee.Email,
		Data: domain.WelcomeMailData{
			Name:       employee.Name,
			Position:   employee.Position,
			Department: string(employee.Department),
			HireDate:   employee.HireDate.Format(domain.DateLayout),
		},
	}

	// 邮件发送失败不影响员工的创建
	if err := s.publisher.Publish(ctx, msg); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("employee_id", employee.ID).Msg("欢迎邮件投递失败")
	}
}

package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

type PostgresRepository struct {
	dbpool       *sql.DB
	queryTimeout time.Duration
}

func NewPostgresRepository(dbpool *sql.DB, queryTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{
		dbpool:       dbpool,
		queryTimeout: queryTimeout,
	}
}

// EnsureSchema 建表并创建邮箱唯一索引
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, email, phone, department, position, hire_date, salary, address, created_at, updated_at
		FROM employees ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		if err := rows.Scan(employeeDst(employee)...); err != nil {
			return nil, err
		}
		normalizeTimes(employee)
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	query := `
		SELECT id, name, email, phone, department, position, hire_date, salary, address, created_at, updated_at
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	employee := &domain.Employee{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(employeeDst(employee)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	normalizeTimes(employee)

	return employee, nil
}

func (r *PostgresRepository) Create(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (id, name, email, phone, department, position, hire_date, salary, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	id := uuid.NewString()
	args := []any{id, employee.Name, employee.Email, employee.Phone, string(employee.Department), employee.Position, employee.HireDate, employee.Salary, employee.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return translateError(err, employee.Email)
	}

	employee.ID = id
	normalizeTimes(employee)
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if _, err := uuid.Parse(employee.ID); err != nil {
		return ErrNotFound
	}

	query := `
		UPDATE employees
		SET
			name = $1,
			email = $2,
			phone = $3,
			department = $4,
			position = $5,
			hire_date = $6,
			salary = $7,
			address = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	args := []any{employee.Name, employee.Email, employee.Phone, string(employee.Department), employee.Position, employee.HireDate, employee.Salary, employee.Address, employee.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.CreatedAt, &employee.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return translateError(err, employee.Email)
	}
	normalizeTimes(employee)

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	return r.dbpool.PingContext(ctx)
}

func employeeDst(e *domain.Employee) []any {
	return []any{&e.ID, &e.Name, &e.Email, &e.Phone, &e.Department, &e.Position, &e.HireDate, &e.Salary, &e.Address, &e.CreatedAt, &e.UpdatedAt}
}

func normalizeTimes(e *domain.Employee) {
	e.HireDate = e.HireDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
}

func translateError(err error, email string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "employees_email_key" {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	return err
}

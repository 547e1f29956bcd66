package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/repository"
	"github.com/Govind-Kandale-1/3Tier-website/internal/service"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T, maxBodyBytes int64) (*httptest.Server, *repository.MockEmployeeRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.MaxBodyBytes = maxBodyBytes

	v, err := utils.NewEmployeeValidator(utils.WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	repo := repository.NewMockEmployeeRepository(gomock.NewController(t))
	svc := service.NewEmployeeService(repo, v, nil)

	h, err := NewHandler(cfg, svc, prometheus.NewRegistry())
	require.NoError(t, err)
	h.RegisterRoutes()

	srv := httptest.NewServer(h.Mux)
	t.Cleanup(srv.Close)
	return srv, repo
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func sampleEmployee(id string) *domain.Employee {
	return &domain.Employee{
		ID:         id,
		Name:       "John Doe",
		Email:      "john.doe@company.com",
		Phone:      "555-123-4567",
		Department: domain.DepartmentEngineering,
		Position:   "Software Developer",
		HireDate:   time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Salary:     75000,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

const validBody = `{"name":"A","email":"a@x.com","phone":"555-111-2222","department":"HR","position":"P","hireDate":"2024-01-01","salary":1}`

func TestGetAllEmployees(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().List(gomock.Any()).Return([]*domain.Employee{sampleEmployee("1"), sampleEmployee("2")}, nil)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/employees", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Empty(t, env.Message)

	var employees []domain.Employee
	require.NoError(t, json.Unmarshal(env.Data, &employees))
	require.Len(t, employees, 2)
	assert.Equal(t, "1", employees[0].ID)
	assert.Equal(t, domain.DepartmentEngineering, employees[0].Department)
}

func TestGetAllEmployees_EmptyListIsArray(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().List(gomock.Any()).Return([]*domain.Employee{}, nil)

	_, env := doRequest(t, http.MethodGet, srv.URL+"/api/employees", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGetEmployee(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().GetByID(gomock.Any(), "1").Return(sampleEmployee("1"), nil)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, repository.ErrNotFound)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/employees/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var employee domain.Employee
	require.NoError(t, json.Unmarshal(env.Data, &employee))
	assert.Equal(t, "john.doe@company.com", employee.Email)

	resp, env = doRequest(t, http.MethodGet, srv.URL+"/api/employees/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Employee not found", env.Message)
	assert.Empty(t, env.Data)
}

func TestCreateEmployee(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	gomock.InOrder(
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Employee) error {
			e.ID = "new-id"
			return nil
		}),
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicateEmail),
	)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/employees", validBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Employee created successfully", env.Message)
	var employee domain.Employee
	require.NoError(t, json.Unmarshal(env.Data, &employee))
	assert.Equal(t, "new-id", employee.ID)
	assert.Equal(t, 1.0, employee.Salary)

	resp, env = doRequest(t, http.MethodPost, srv.URL+"/api/employees", validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Employee validation failed: email: Email already exists", env.Message)
}

func TestCreateEmployee_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, 1<<20)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/employees", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Message, "Employee validation failed: name: Name is required"), env.Message)

	resp, env = doRequest(t, http.MethodPost, srv.URL+"/api/employees", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestCreateEmployee_BodyTooLarge(t *testing.T) {
	srv, _ := newTestServer(t, 32)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/employees", validBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Request body too large", env.Message)
}

func TestSingularAlias(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/employee", validBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestUpdateEmployee(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	gomock.InOrder(
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(repository.ErrNotFound),
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.Employee) error {
			assert.Equal(t, "1", e.ID)
			return nil
		}),
	)

	resp, env := doRequest(t, http.MethodPut, srv.URL+"/api/employees/unknown", validBody)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Employee not found", env.Message)

	resp, env = doRequest(t, http.MethodPut, srv.URL+"/api/employees/1", validBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Employee updated successfully", env.Message)
}

func TestDeleteEmployee(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	gomock.InOrder(
		repo.EXPECT().Delete(gomock.Any(), "1").Return(nil),
		repo.EXPECT().Delete(gomock.Any(), "1").Return(repository.ErrNotFound),
	)

	resp, env := doRequest(t, http.MethodDelete, srv.URL+"/api/employees/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Employee deleted successfully", env.Message)
	assert.Empty(t, env.Data)

	resp, env = doRequest(t, http.MethodDelete, srv.URL+"/api/employees/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Employee not found", env.Message)
}

func TestInternalErrorReturnsRawMessage(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("server selection timeout"))

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/employees", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "server selection timeout", env.Message)
}

func TestRecovererReturnsEnvelope(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().List(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.Employee, error) {
		panic("boom")
	})

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/employees", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "panic: boom", env.Message)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, 1<<20)

	resp, _ := doRequest(t, http.MethodOptions, srv.URL+"/api/employees", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestHealth(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	gomock.InOrder(
		repo.EXPECT().Ping(gomock.Any()).Return(nil),
		repo.EXPECT().Ping(gomock.Any()).Return(errors.New("no reachable servers")),
	)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = doRequest(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestMetricsExposeRequestHistogram(t *testing.T) {
	srv, repo := newTestServer(t, 1<<20)

	repo.EXPECT().List(gomock.Any()).Return([]*domain.Employee{}, nil)
	doRequest(t, http.MethodGet, srv.URL+"/api/employees", "")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_request_duration_seconds_count{method="GET",route="/api/employees`)
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/employees", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, []map[string]any{
			{"id": "EMP001", "name": "John Smith", "department": "Engineering", "salary": 75000, "hireDate": "2023-01-15T00:00:00Z"},
		}, "")
	}))
	defer srv.Close()

	employees, err := New(srv.URL+"/api/", WithHTTPClient(srv.Client())).List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "EMP001", employees[0].ID)
	assert.Equal(t, 75000.0, employees[0].Salary)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), employees[0].HireDate)
}

func TestClient_CreateSendsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in domain.EmployeeInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@x.com", in.Email)
		assert.Equal(t, "1", in.Salary.String())

		writeEnvelope(w, http.StatusCreated, true, map[string]any{"id": "abc", "email": in.Email}, "Employee created successfully")
	}))
	defer srv.Close()

	employee, err := New(srv.URL).Create(context.Background(), domain.EmployeeInput{Email: "a@x.com", Salary: "1"})
	require.NoError(t, err)
	assert.Equal(t, "abc", employee.ID)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/employees/missing":
			writeEnvelope(w, http.StatusNotFound, false, nil, "Employee not found")
		case "/employees/invalid":
			writeEnvelope(w, http.StatusBadRequest, false, nil, "Employee validation failed: email: Email already exists")
		case "/employees/broken":
			writeEnvelope(w, http.StatusInternalServerError, false, nil, "connection refused")
		default:
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.EqualError(t, err, "Employee not found")

	_, err = c.Update(ctx, "invalid", domain.EmployeeInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	msg, _ := verr.Field("email")
	assert.Equal(t, "Email already exists", msg)
	assert.False(t, IsNotFound(err))

	err = c.Delete(ctx, "broken")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "connection refused", apiErr.Message)

	err = c.Delete(ctx, "other")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL, WithTimeout(time.Second)).List(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

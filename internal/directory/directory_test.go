package directory

import (
	"context"
	"testing"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()

	v, err := utils.NewEmployeeValidator(utils.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	s := NewStore(backend, v)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func ids(employees []*domain.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.ID)
	}
	return out
}

func validInput() domain.EmployeeInput {
	return domain.EmployeeInput{
		Name:       "A",
		Email:      "a@x.com",
		Phone:      "555-111-2222",
		Department: "HR",
		Position:   "P",
		HireDate:   "2024-01-01",
		Salary:     "1",
	}
}

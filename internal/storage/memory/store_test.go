package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/storage"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	created, err := users.CreateUser(ctx, models.User{Email: "a@x.com", Role: models.RoleEmployee})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = users.CreateUser(ctx, models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListUsersByRoles(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	for email, role := range map[string]models.Role{
		"admin@x.com": models.RoleAdmin,
		"hr@x.com":    models.RoleHR,
		"e1@x.com":    models.RoleEmployee,
		"e2@x.com":    models.RoleEmployee,
	} {
		_, err := users.CreateUser(ctx, models.User{Email: email, Role: role})
		require.NoError(t, err)
	}

	employees, err := users.ListUsers(ctx, models.RoleEmployee)
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	staff, err := users.ListUsers(ctx, models.RoleEmployee, models.RoleHR)
	require.NoError(t, err)
	assert.Len(t, staff, 3)
}

func TestUpdatesReportMatchAndInvalidID(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	u, err := users.CreateUser(ctx, models.User{Email: "a@x.com"})
	require.NoError(t, err)

	res, err := users.SetVerified(ctx, u.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)

	res, err = users.SetVerified(ctx, u.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{MatchedCount: 1}, res)

	_, err = users.SetVerified(ctx, "nope", true)
	assert.ErrorIs(t, err, storage.ErrInvalidID)
}

func TestConcurrentPayrollCreationAllowsOneWinner(t *testing.T) {
	ctx := context.Background()
	payrolls := New().Payrolls()
	p := models.Payroll{Employee: models.EmployeeRef{Email: "e@x.com"}, Month: "January", Year: 2025}

	var wg sync.WaitGroup
	var wins atomic.Int32
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := payrolls.CreatePayroll(ctx, p); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	exists, err := payrolls.PayrollExists(ctx, p.Key())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	tasks := New().Tasks()

	created, err := tasks.CreateTask(ctx, models.Task{UserEmail: "e@x.com", Task: "Sales", Hour: 3, Date: "2025-01-02"})
	require.NoError(t, err)

	res, err := tasks.UpdateTask(ctx, created.ID, models.TaskChanges{Task: "Support", Hour: 4, Date: "2025-01-03"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	mine, err := tasks.ListTasks(ctx, "e@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Support", mine[0].Task)

	del, err := tasks.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = tasks.FindTask(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// Package storagetest holds behavior every storage.Store backend must share.
package storagetest

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

// Factory returns an empty, migrated store. It is called once per subtest.
type Factory func(t *testing.T) storage.Store

// Run exercises a backend. missingID must be well-formed for the backend but
// refer to no record.
func Run(t *testing.T, newStore Factory, missingID string) {
	t.Run("UserEmailIsUnique", func(t *testing.T) {
		ctx := context.Background()
		users := newStore(t).Users()

		first, err := users.CreateUser(ctx, models.User{Email: "a@x.com", Role: models.RoleEmployee, WorkStatus: models.WorkStatusActive})
		require.NoError(t, err)
		assert.NotEmpty(t, first.ID)

		_, err = users.CreateUser(ctx, models.User{Email: "a@x.com"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)

		got, err := users.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, models.RoleEmployee, got.Role)
	})

	t.Run("UserLookupsAndUpdates", func(t *testing.T) {
		ctx := context.Background()
		users := newStore(t).Users()
		hr, err := users.CreateUser(ctx, models.User{Email: "hr@x.com", Role: models.RoleHR, WorkStatus: models.WorkStatusActive})
		require.NoError(t, err)
		_, err = users.CreateUser(ctx, models.User{Email: "e@x.com", Role: models.RoleEmployee, WorkStatus: models.WorkStatusActive})
		require.NoError(t, err)
		_, err = users.CreateUser(ctx, models.User{Email: "boss@x.com", Role: models.RoleAdmin, WorkStatus: models.WorkStatusActive})
		require.NoError(t, err)

		_, err = users.FindByEmail(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = users.FindByID(ctx, missingID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = users.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrInvalidID)

		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		staff, err := users.ListUsers(ctx, models.RoleEmployee, models.RoleHR)
		require.NoError(t, err)
		assert.Len(t, staff, 2)

		res, err := users.SetRole(ctx, hr.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		res, err = users.SetWorkStatus(ctx, hr.ID, models.WorkStatusInactive)
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		res, err = users.SetVerified(ctx, missingID, true)
		require.NoError(t, err)
		assert.Zero(t, res.MatchedCount)

		got, err := users.FindByEmail(ctx, "hr@x.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
		assert.Equal(t, models.WorkStatusInactive, got.WorkStatus)
	})

	t.Run("PayrollPeriodKeyIsUnique", func(t *testing.T) {
		ctx := context.Background()
		payrolls := newStore(t).Payrolls()
		p := models.Payroll{
			Employee:      models.EmployeeRef{Email: "e@x.com", Name: "E"},
			Amount:        1500,
			Month:         "March",
			Year:          2025,
			PaymentStatus: models.PaymentStatusPending,
		}

		var wg sync.WaitGroup
		var wins atomic.Int32
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := payrolls.CreatePayroll(ctx, p)
				if err == nil {
					wins.Add(1)
					return
				}
				assert.ErrorIs(t, err, storage.ErrAlreadyExists)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())

		list, err := payrolls.ListPayrolls(ctx, storage.PayrollFilter{EmployeeEmail: "e@x.com"})
		require.NoError(t, err)
		require.Len(t, list, 1)

		exists, err := payrolls.PayrollExists(ctx, p.Key())
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = payrolls.PayrollExists(ctx, models.PeriodKey{EmployeeEmail: "e@x.com", Month: "April", Year: 2025})
		require.NoError(t, err)
		assert.False(t, exists)

		res, err := payrolls.UpdatePayment(ctx, list[0].ID, storage.PaymentUpdate{PaymentDate: "2025-03-31", PaymentStatus: models.PaymentStatusPaid})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		paid, err := payrolls.ListPayrolls(ctx, storage.PayrollFilter{EmployeeEmail: "e@x.com", PaymentStatus: models.PaymentStatusPaid})
		require.NoError(t, err)
		assert.Len(t, paid, 1)

		res, err = payrolls.UpdatePayment(ctx, missingID, storage.PaymentUpdate{PaymentStatus: models.PaymentStatusPaid})
		require.NoError(t, err)
		assert.Zero(t, res.MatchedCount)
	})

	t.Run("TaskCRUD", func(t *testing.T) {
		ctx := context.Background()
		tasks := newStore(t).Tasks()
		created, err := tasks.CreateTask(ctx, models.Task{UserEmail: "e@x.com", Task: "Sales", Hour: 2, Date: "2025-03-01"})
		require.NoError(t, err)
		_, err = tasks.CreateTask(ctx, models.Task{UserEmail: "o@x.com", Task: "Content", Hour: 5, Date: "2025-03-01"})
		require.NoError(t, err)

		mine, err := tasks.ListTasks(ctx, "e@x.com")
		require.NoError(t, err)
		assert.Len(t, mine, 1)
		all, err := tasks.ListTasks(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		res, err := tasks.UpdateTask(ctx, created.ID, models.TaskChanges{Task: "Support", Hour: 3, Date: "2025-03-02"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.MatchedCount)
		got, err := tasks.FindTask(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Support", got.Task)
		assert.InDelta(t, 3, got.Hour, 0.001)

		del, err := tasks.DeleteTask(ctx, created.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, del.DeletedCount)
		del, err = tasks.DeleteTask(ctx, created.ID)
		require.NoError(t, err)
		assert.Zero(t, del.DeletedCount)
		_, err = tasks.DeleteTask(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrInvalidID)
	})
}

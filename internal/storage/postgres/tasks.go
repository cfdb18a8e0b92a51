package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/models"
)

const taskColumns = `id, user_email, task, hour, date, created_at`

type taskRow struct {
	ID        string    `db:"id"`
	UserEmail string    `db:"user_email"`
	Task      string    `db:"task"`
	Hour      float64   `db:"hour"`
	Date      string    `db:"date"`
	CreatedAt time.Time `db:"created_at"`
}

func (r taskRow) model() models.Task {
	return models.Task{
		ID:        r.ID,
		UserEmail: r.UserEmail,
		Task:      r.Task,
		Hour:      r.Hour,
		Date:      r.Date,
		CreatedAt: r.CreatedAt,
	}
}

type taskStore struct{ db *sqlx.DB }

func (s *taskStore) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	var row taskRow
	err := s.db.GetContext(ctx, &row,
		`INSERT INTO tasks (id, user_email, task, hour, date) VALUES ($1, $2, $3, $4, $5) RETURNING `+taskColumns,
		ids.New(), t.UserEmail, t.Task, t.Hour, t.Date)
	if err != nil {
		return models.Task{}, err
	}
	return row.model(), nil
}

func (s *taskStore) FindTask(ctx context.Context, id string) (models.Task, error) {
	if err := checkID(id); err != nil {
		return models.Task{}, err
	}
	var row taskRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id); err != nil {
		return models.Task{}, notFound(err)
	}
	return row.model(), nil
}

func (s *taskStore) ListTasks(ctx context.Context, userEmail string) ([]models.Task, error) {
	var (
		rows []taskRow
		err  error
	)
	if userEmail == "" {
		err = s.db.SelectContext(ctx, &rows, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`)
	} else {
		err = s.db.SelectContext(ctx, &rows, `SELECT `+taskColumns+` FROM tasks WHERE user_email = $1 ORDER BY created_at, id`, userEmail)
	}
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *taskStore) UpdateTask(ctx context.Context, id string, changes models.TaskChanges) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET task = $2, hour = $3, date = $4 WHERE id = $1`,
		id, changes.Task, changes.Hour, changes.Date)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

func (s *taskStore) DeleteTask(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: n}, nil
}

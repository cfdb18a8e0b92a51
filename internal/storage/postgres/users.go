package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const userColumns = `id, name, email, photo, role, work_status, is_verified, designation, bank_account_no, salary, password_hash, created_at`

type userRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Photo         string    `db:"photo"`
	Role          string    `db:"role"`
	WorkStatus    string    `db:"work_status"`
	IsVerified    bool      `db:"is_verified"`
	Designation   string    `db:"designation"`
	BankAccountNo string    `db:"bank_account_no"`
	Salary        float64   `db:"salary"`
	PasswordHash  string    `db:"password_hash"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r userRow) model() models.User {
	return models.User{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		Photo:         r.Photo,
		Role:          models.Role(r.Role),
		WorkStatus:    models.WorkStatus(r.WorkStatus),
		IsVerified:    r.IsVerified,
		Designation:   r.Designation,
		BankAccountNo: r.BankAccountNo,
		Salary:        r.Salary,
		PasswordHash:  r.PasswordHash,
		CreatedAt:     r.CreatedAt,
	}
}

type userStore struct{ db *sqlx.DB }

// CreateUser inserts a new user row.
func (s *userStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, name, email, photo, role, work_status, is_verified, designation, bank_account_no, salary, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns
	var row userRow
	err := s.db.GetContext(ctx, &row, query,
		ids.New(), user.Name, user.Email, user.Photo, string(user.Role), string(user.WorkStatus),
		user.IsVerified, user.Designation, user.BankAccountNo, user.Salary, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return row.model(), nil
}

// FindByEmail fetches a user by email address.
func (s *userStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email); err != nil {
		return models.User{}, notFound(err)
	}
	return row.model(), nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (models.User, error) {
	if err := checkID(id); err != nil {
		return models.User{}, err
	}
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return models.User{}, notFound(err)
	}
	return row.model(), nil
}

func (s *userStore) ListUsers(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if len(roles) > 0 {
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		q, a, err := sqlx.In(query+` WHERE role IN (?)`, names)
		if err != nil {
			return nil, err
		}
		query, args = s.db.Rebind(q), a
	}
	query += ` ORDER BY created_at, id`

	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *userStore) SetRole(ctx context.Context, id string, role models.Role) (models.UpdateResult, error) {
	return s.update(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, string(role))
}

func (s *userStore) SetVerified(ctx context.Context, id string, verified bool) (models.UpdateResult, error) {
	return s.update(ctx, `UPDATE users SET is_verified = $2 WHERE id = $1`, id, verified)
}

func (s *userStore) SetWorkStatus(ctx context.Context, id string, status models.WorkStatus) (models.UpdateResult, error) {
	return s.update(ctx, `UPDATE users SET work_status = $2 WHERE id = $1`, id, string(status))
}

func (s *userStore) update(ctx context.Context, query, id string, value any) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.db.ExecContext(ctx, query, id, value)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const payrollColumns = `id, employee_id, employee_name, employee_email, amount, month, year, payment_status, payment_date, transaction_id, created_at`

type payrollRow struct {
	ID            string    `db:"id"`
	EmployeeID    string    `db:"employee_id"`
	EmployeeName  string    `db:"employee_name"`
	EmployeeEmail string    `db:"employee_email"`
	Amount        float64   `db:"amount"`
	Month         string    `db:"month"`
	Year          int       `db:"year"`
	PaymentStatus string    `db:"payment_status"`
	PaymentDate   string    `db:"payment_date"`
	TransactionID string    `db:"transaction_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r payrollRow) model() models.Payroll {
	return models.Payroll{
		ID: r.ID,
		Employee: models.EmployeeRef{
			ID:    r.EmployeeID,
			Name:  r.EmployeeName,
			Email: r.EmployeeEmail,
		},
		Amount:        r.Amount,
		Month:         r.Month,
		Year:          r.Year,
		PaymentStatus: r.PaymentStatus,
		PaymentDate:   r.PaymentDate,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
	}
}

type payrollStore struct{ db *sqlx.DB }

// CreatePayroll relies on payrolls_period_key_idx to reject a second record
// for the same employee, month, and year.
func (s *payrollStore) CreatePayroll(ctx context.Context, p models.Payroll) (models.Payroll, error) {
	const query = `
		INSERT INTO payrolls (id, employee_id, employee_name, employee_email, amount, month, year, payment_status, payment_date, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + payrollColumns
	var row payrollRow
	err := s.db.GetContext(ctx, &row, query,
		ids.New(), p.Employee.ID, p.Employee.Name, p.Employee.Email, p.Amount, p.Month, p.Year,
		p.PaymentStatus, p.PaymentDate, p.TransactionID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Payroll{}, storage.ErrAlreadyExists
		}
		return models.Payroll{}, err
	}
	return row.model(), nil
}

func (s *payrollStore) PayrollExists(ctx context.Context, key models.PeriodKey) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM payrolls WHERE employee_email = $1 AND month = $2 AND year = $3)`,
		key.EmployeeEmail, key.Month, key.Year)
	return exists, err
}

func (s *payrollStore) ListPayrolls(ctx context.Context, filter storage.PayrollFilter) ([]models.Payroll, error) {
	var (
		conds []string
		args  []any
	)
	if filter.EmployeeEmail != "" {
		args = append(args, filter.EmployeeEmail)
		conds = append(conds, "employee_email = $"+strconv.Itoa(len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		conds = append(conds, "payment_status = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + payrollColumns + ` FROM payrolls`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at, id`

	var rows []payrollRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]models.Payroll, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *payrollStore) UpdatePayment(ctx context.Context, id string, update storage.PaymentUpdate) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE payrolls SET payment_date = $2, payment_status = $3, transaction_id = $4 WHERE id = $1`,
		id, update.PaymentDate, update.PaymentStatus, update.TransactionID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

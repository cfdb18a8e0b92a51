package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const (
	payrollExistsMessage  = "Payroll for this month already exists"
	payrollNotFound       = "Payroll not found"
	payrollUpdatedMessage = "Payroll updated successfully"
)

// Payrolls manages monthly payment records.
type Payrolls struct {
	store storage.PayrollStore
}

func NewPayrolls(store storage.PayrollStore) *Payrolls {
	return &Payrolls{store: store}
}

// Exists reports whether a payroll is already recorded for the period.
func (s *Payrolls) Exists(ctx context.Context, employeeEmail, month, year string) (bool, error) {
	key, err := periodKey(employeeEmail, month, year)
	if err != nil {
		return false, err
	}
	exists, err := s.store.PayrollExists(ctx, key)
	return exists, storeError(err, "")
}

func periodKey(employeeEmail, month, year string) (models.PeriodKey, error) {
	employeeEmail = normalizeEmail(employeeEmail)
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)
	if employeeEmail == "" || month == "" || year == "" {
		return models.PeriodKey{}, apperr.BadRequest("employee_email, month and year are required")
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return models.PeriodKey{}, apperr.BadRequest("year must be an integer")
	}
	return models.PeriodKey{EmployeeEmail: employeeEmail, Month: month, Year: y}, nil
}

// Create records a payroll. A second payroll for the same period is a Conflict.
func (s *Payrolls) Create(ctx context.Context, req dto.CreatePayrollRequest) (models.InsertResult, error) {
	employee := req.Employee
	employee.Email = normalizeEmail(employee.Email)
	month := strings.TrimSpace(req.Month)
	if employee.Email == "" || month == "" || req.Year == 0 {
		return models.InsertResult{}, apperr.BadRequest("employee.email, month and year are required")
	}
	if req.Amount < 0 {
		return models.InsertResult{}, apperr.BadRequest("amount must not be negative")
	}
	status := strings.TrimSpace(req.PaymentStatus)
	if status == "" {
		status = models.PaymentStatusPending
	}

	created, err := s.store.CreatePayroll(ctx, models.Payroll{
		Employee:      employee,
		Amount:        req.Amount,
		Month:         month,
		Year:          req.Year,
		PaymentStatus: status,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.InsertResult{}, apperr.Wrap(apperr.CodeConflict, payrollExistsMessage, err)
		}
		return models.InsertResult{}, storeError(err, "")
	}
	return models.InsertResult{InsertedID: &created.ID}, nil
}

func (s *Payrolls) ListAll(ctx context.Context) ([]models.Payroll, error) {
	return s.list(ctx, storage.PayrollFilter{})
}

// ListForEmployee returns one employee's history. status "paid" narrows to
// paid records; any other value is ignored.
func (s *Payrolls) ListForEmployee(ctx context.Context, email, status string) ([]models.Payroll, error) {
	filter := storage.PayrollFilter{EmployeeEmail: normalizeEmail(email)}
	if strings.EqualFold(strings.TrimSpace(status), models.PaymentStatusPaid) {
		filter.PaymentStatus = models.PaymentStatusPaid
	}
	return s.list(ctx, filter)
}

func (s *Payrolls) list(ctx context.Context, filter storage.PayrollFilter) ([]models.Payroll, error) {
	payrolls, err := s.store.ListPayrolls(ctx, filter)
	if err != nil {
		return nil, storeError(err, "")
	}
	if payrolls == nil {
		payrolls = []models.Payroll{}
	}
	return payrolls, nil
}

// UpdatePayment overwrites the payment fields of one payroll.
func (s *Payrolls) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (dto.MessageResponse, error) {
	res, err := s.store.UpdatePayment(ctx, id, storage.PaymentUpdate{
		PaymentDate:   strings.TrimSpace(req.PaymentDate),
		PaymentStatus: strings.TrimSpace(req.PaymentStatus),
		TransactionID: strings.TrimSpace(req.TransactionID),
	})
	if err != nil {
		return dto.MessageResponse{}, storeError(err, payrollNotFound)
	}
	if res.MatchedCount == 0 {
		return dto.MessageResponse{}, apperr.NotFound(payrollNotFound)
	}
	return dto.MessageResponse{Message: payrollUpdatedMessage}, nil
}

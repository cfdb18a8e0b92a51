package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// EmployeeRef is the employee snapshot embedded in a payroll record.
type EmployeeRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Payroll is a monthly payment record. (Employee.Email, Month, Year) is unique.
type Payroll struct {
	ID            string      `json:"_id"`
	Employee      EmployeeRef `json:"employee"`
	Amount        float64     `json:"amount"`
	Month         string      `json:"month"`
	Year          int         `json:"year"`
	PaymentStatus string      `json:"payment_status"`
	PaymentDate   string      `json:"payment_date,omitempty"`
	TransactionID string      `json:"transaction_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// PeriodKey identifies the single payroll an employee may have per month.
type PeriodKey struct {
	EmployeeEmail string
	Month         string
	Year          int
}

// Key returns the payroll's period key.
func (p Payroll) Key() PeriodKey {
	return PeriodKey{EmployeeEmail: p.Employee.Email, Month: p.Month, Year: p.Year}
}

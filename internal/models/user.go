package models

import "time"

// WorkStatus tracks whether an account is still employed.
type WorkStatus string

const (
	WorkStatusActive   WorkStatus = "active"
	WorkStatusInactive WorkStatus = "inactive"
)

// User is a Staffly account. Email is the unique key.
type User struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email"`
	Photo         string     `json:"photo,omitempty"`
	Role          Role       `json:"role"`
	WorkStatus    WorkStatus `json:"workStatus"`
	IsVerified    bool       `json:"isVerified"`
	Designation   string     `json:"designation,omitempty"`
	BankAccountNo string     `json:"bank_account_no,omitempty"`
	Salary        float64    `json:"salary,omitempty"`
	PasswordHash  string     `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Active reports whether the user has not been fired.
func (u User) Active() bool {
	return u.WorkStatus != WorkStatusInactive
}

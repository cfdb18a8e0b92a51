package dto

import "github.com/hongminglow/staffly-be/internal/models"

type RegisterRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Photo         string  `json:"photo"`
	Role          string  `json:"role"`
	Designation   string  `json:"designation"`
	BankAccountNo string  `json:"bank_account_no"`
	Salary        float64 `json:"salary"`
	Password      string  `json:"password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type VerifyRequest struct {
	IsVerified *bool `json:"isVerified"`
}

type RoleResponse struct {
	Role models.RoleFlags `json:"role"`
}

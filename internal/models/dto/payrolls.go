package dto

import "github.com/hongminglow/staffly-be/internal/models"

type CreatePayrollRequest struct {
	Employee      models.EmployeeRef `json:"employee"`
	Amount        float64            `json:"amount"`
	Month         string             `json:"month"`
	Year          int                `json:"year"`
	PaymentStatus string             `json:"payment_status"`
}

type UpdatePaymentRequest struct {
	PaymentDate   string `json:"payment_date"`
	PaymentStatus string `json:"payment_status"`
	TransactionID string `json:"transaction_id"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

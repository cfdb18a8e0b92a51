package dto

type CreateTaskRequest struct {
	UserEmail string  `json:"user_email"`
	Task      string  `json:"task"`
	Hour      float64 `json:"hour"`
	Date      string  `json:"date"`
}

type UpdateTaskRequest struct {
	Task string  `json:"task"`
	Hour float64 `json:"hour"`
	Date string  `json:"date"`
}

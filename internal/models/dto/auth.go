package dto

// TokenRequest asks for a token for a stored user. Any other fields a client
// posts are ignored; claims come from the stored record.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

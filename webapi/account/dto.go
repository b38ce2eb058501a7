package account

import "time"

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=16"`
	Fullname string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse is the public view of an account. The password hash and
// wallet id never leave the service.
type ProfileResponse struct {
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	HasWallet bool      `json:"has_wallet"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the issued token and the account it belongs to.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account ProfileResponse `json:"account"`
}

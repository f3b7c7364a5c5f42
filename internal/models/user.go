package models

// RegisterUser is an account row used by the register/login endpoints. These
// accounts are independent of the per-submission users table.
type RegisterUser struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

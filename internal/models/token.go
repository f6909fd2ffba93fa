package models

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse pairs the signed bearer token with the user it was issued for
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

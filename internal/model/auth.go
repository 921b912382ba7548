package model

// LoginRequest is the staff portal login form.
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" binding:"max=128"`
}

// LoginResult is returned by the simulated login.
type LoginResult struct {
	Email    string `json:"email"`
	Redirect string `json:"redirect"`
}

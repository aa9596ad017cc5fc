package dto

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@uni.edu.pe"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// LoginRequest is the OAuth2 password-grant form; username carries the email.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required" example:"student@uni.edu.pe"`
	Password string `form:"password" json:"password" binding:"required" example:"secret123"`
}

// TokenResponse represents an issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in,omitempty" example:"86400"`
}

// UserResponse is the public view of the authenticated user
type UserResponse struct {
	ID    string `json:"id" example:"3b241101-e2bb-4255-8caf-4136c566a962"`
	Email string `json:"email" example:"student@uni.edu.pe"`
}

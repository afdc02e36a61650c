package dto

// ── auth ──

// LoginRequest login form
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest self-registration form; always creates a student
type RegisterRequest struct {
	FullName        string `json:"full_name"        name:"full name"        validate:"notblank,max=100"`
	Email           string `json:"email"            name:"email"            validate:"notblank,lms_email"`
	Username        string `json:"username"         name:"username"         validate:"notblank,max=50"`
	Password        string `json:"password"         name:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" name:"confirm password" validate:"required,eqfield=Password"`
}

// UserResponse public view of a user
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResponse principal plus signed session token
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

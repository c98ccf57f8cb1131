package auth

// ==================== REQUEST STRUCTS ====================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"required,brphone"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ==================== RESPONSE STRUCTS ====================

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

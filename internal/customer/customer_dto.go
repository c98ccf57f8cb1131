package customer

type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=2,max=120"`
	Phone           *string `json:"phone" binding:"omitempty,brphone"`
	Password        *string `json:"password" binding:"omitempty,min=8,max=72"`
	CurrentPassword *string `json:"current_password"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

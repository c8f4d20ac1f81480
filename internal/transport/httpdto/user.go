package httpdto

// UserDTO is the public user summary used across responses
type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfileRequest is used for PUT /api/profile; absent fields are
// left unchanged
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

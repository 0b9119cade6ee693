package user

// UpdateProfileRequest is the body of PATCH /auth/profile
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"notblank,max=100"`
	LastName  string `json:"last_name" validate:"notblank,max=100"`
}

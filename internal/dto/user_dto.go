package dto

// UpdateProfileRequest carries a partial profile update. Empty strings mean
// "not provided" and never clear a stored value; the notification flags use
// pointers for the same reason.
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	Bio         string `json:"bio"`
	ProfilePic  string `json:"profile_pic"`
	EmailNotify *bool  `json:"email_notify"`
	InAppNotify *bool  `json:"in_app_notify"`
}

package httpdto

type AddContactRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	Username string `json:"username" binding:"required"`
	Avatar   string `json:"avatar"`
	Status   string `json:"status"`
}

type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=online away offline"`
}

package dto

// StatusResponse is the {status, message} acknowledgement returned by write endpoints.
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Progress synchronized"`
}

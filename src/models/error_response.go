package models

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Status  int    `json:"status"`  // HTTP status code
	Message string `json:"message"` // human readable reason
}

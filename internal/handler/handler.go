// Package handler is the HTTP layer: it binds and validates input, calls the
// appropriate service, and shapes the response envelope. No business logic
// lives here.
package handler

// Response is the success envelope shared by all endpoints. Errors use the
// errs.HTTPError envelope instead; both carry the `success` discriminator.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps data in the standard success envelope.
func OK(data interface{}, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// Paginated is a list payload with paging metadata.
type Paginated struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

package dto

// CreateCheckoutSessionRequest payload.
type CreateCheckoutSessionRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateCheckoutSessionResponse carries the processor redirect URL.
type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON error body of the checkout endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

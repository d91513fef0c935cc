package dto

import "saludos/internal/domain"

// SubmitGreetingRequest is bound from either a JSON body or a form post
type SubmitGreetingRequest = domain.GreetingRequest

// SubmitGreetingResponse mirrors the form's own result shape
type SubmitGreetingResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	JobID   string            `json:"jobId,omitempty"`
}

// SubmitGreetingFormResponse carries the confirmation redirect for form posts
type SubmitGreetingFormResponse struct {
	SubmitGreetingResponse
	Location string `json:"-"`
}

func (r SubmitGreetingFormResponse) RedirectLocation() string {
	return r.Location
}

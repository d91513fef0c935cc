package dto

// GetJobStatusRequest has no body; the id comes from ?videoId=, ?id= or the path
type GetJobStatusRequest struct{}

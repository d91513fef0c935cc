package response

// StandardResponse is the JSON envelope every API route answers with
type StandardResponse struct {
	Status    StatusEnum `json:"status"`
	ErrorCode int        `json:"errorCode"`
	Message   string     `json:"message"`
	Data      any        `json:"data"`
	Errors    []Errors   `json:"errors"`
}

type StatusEnum string

const (
	StatusSuccess StatusEnum = "SUCCESS"
	StatusFailed  StatusEnum = "FAILED"
)

type Errors struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

func Success(data any) StandardResponse {
	return StandardResponse{
		Status:  StatusSuccess,
		Message: "Success",
		Data:    data,
		Errors:  []Errors{},
	}
}

// Failure builds a failed envelope whose top-level code and message are
// taken from the first error.
func Failure(data any, errs ...Errors) StandardResponse {
	resp := StandardResponse{
		Status: StatusFailed,
		Data:   data,
		Errors: errs,
	}
	if len(errs) > 0 {
		resp.ErrorCode = errs[0].ErrorCode
		resp.Message = errs[0].Message
	}
	if resp.Errors == nil {
		resp.Errors = []Errors{}
	}
	return resp
}

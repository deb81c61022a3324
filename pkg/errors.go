package pkg

// AppError is the error shape returned by HTTP handlers.
//
// Code is a stable machine-readable identifier, Message is safe to show to the customer
// and Err keeps the underlying cause for logs only.
type AppError struct {
	Code       string
	Message    string
	Err        error
	HTTPStatus int

	Details string
	Logs    []string
}

// HTTPError is the JSON body written for failed requests.
type HTTPError struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details string   `json:"details,omitempty"`
	Logs    []string `json:"logs,omitempty"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying troubleshooting data for the response body.
func (e *AppError) WithDetails(details string, logs []string) *AppError {
	cp := *e
	cp.Details = details
	cp.Logs = logs
	return &cp
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Error:   e.Code,
		Message: e.Message,
		Details: e.Details,
		Logs:    e.Logs,
	}
}

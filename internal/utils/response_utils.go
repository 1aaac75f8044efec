package utils

// Response is the JSON envelope of every API reply
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// fallbackErrorResponse is written when an error envelope itself cannot be encoded
var fallbackErrorResponse = []byte(`{"success":false,"error":{"message":"internal error"}}`)

// SuccessResponse encodes data inside a successful envelope
func SuccessResponse(data interface{}) ([]byte, error) {
	return Marshal(Response{Success: true, Data: data})
}

// ErrorResponse encodes a failed envelope. Kind and details are omitted when empty.
func ErrorResponse(message, kind, details string) []byte {
	body, err := Marshal(Response{
		Success: false,
		Error: &ErrorBody{
			Message: message,
			Kind:    kind,
			Details: details,
		},
	})
	if err != nil {
		return fallbackErrorResponse
	}
	return body
}

package types

// SuccessEnvelope is the uniform success payload: the OK flag is always true
// and Data carries the endpoint-specific body.
type SuccessEnvelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the uniform failure payload. Clients treat any response
// without ok=true as a failed request regardless of transport status.
type ErrorEnvelope struct {
	OK    bool     `json:"ok"`
	Error APIError `json:"error"`
}

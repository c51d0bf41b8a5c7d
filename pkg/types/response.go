// Package types holds the wire envelopes shared by every API response.
// All endpoints wrap their payload the same way so the production floor
// tablets and the admin dashboard can share one response decoder.
package types

// SuccessEnvelope wraps every 2xx response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failed request. Details is only
// populated for codes whose metadata allows leaking them to clients.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

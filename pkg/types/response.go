// Package types holds the wire envelopes shared by every API endpoint.
package types

// SuccessEnvelope wraps every successful response body, so clients always
// unwrap `data` whether they asked for a product list or a settled sale.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code carries the machine
// taxonomy (VALIDATION_ERROR, STATE_CONFLICT, ...); Details is optional
// structured context such as the short_by amount on an underpaid checkout.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError under `error` for failed responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

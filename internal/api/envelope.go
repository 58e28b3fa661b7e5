package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is bumped when the envelope structure changes, so clients
// can detect incompatible servers.
const EnvelopeVersion = 1

// APIEnvelope wraps successful response bodies.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// APIErrorEnvelope wraps error response bodies.
// Error is a plain string for simple errors, or an object with
// code/message/details for structured ones.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int  `json:"v"`
	Success bool `json:"success"`
	Error   any  `json:"error"`
}

// ErrorPayload is the structured error body inside an APIErrorEnvelope.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the success/error envelope.
// Registered as a huma transformer so handlers return bare DTOs.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case nil:
		return APIEnvelope{Version: EnvelopeVersion, Success: true}, nil
	case APIEnvelope, APIErrorEnvelope:
		// Already wrapped.
		return v, nil
	case *APIError:
		if body.Code == "" && body.Details == nil {
			return APIErrorEnvelope{Version: EnvelopeVersion, Success: false, Error: body.Message}, nil
		}
		return APIErrorEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error: ErrorPayload{
				Code:    body.Code,
				Message: body.Message,
				Details: body.Details,
			},
		}, nil
	case error:
		return APIErrorEnvelope{Version: EnvelopeVersion, Success: false, Error: body.Error()}, nil
	}

	if strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5") {
		return APIErrorEnvelope{Version: EnvelopeVersion, Success: false, Error: v}, nil
	}

	return APIEnvelope{Version: EnvelopeVersion, Success: true, Data: v}, nil
}

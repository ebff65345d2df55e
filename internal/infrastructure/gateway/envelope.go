package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the uniform success/data wrapper every response is normalized
// into. The backend is inconsistent about shapes -- some endpoints return
// `{success, data}`, some a bare array, some wrap the payload one level
// deeper as `{data: {data: [...]}}`. Normalization happens here, once, so no
// call site branches on shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the normalized payload into dest.
func (e *Envelope) Decode(dest any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}

type rawEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// normalizeEnvelope folds the backend's response shape variants into one
// Envelope.
func normalizeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Envelope{Success: true}, nil
	}

	// Bare array: the payload is the whole body.
	if trimmed[0] == '[' {
		return &Envelope{Success: true, Data: json.RawMessage(trimmed)}, nil
	}

	var raw rawEnvelope
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("undecodable response body: %w", err)
	}

	// No recognizable wrapper fields: treat the object itself as the payload.
	if raw.Success == nil && raw.Data == nil {
		return &Envelope{Success: true, Data: json.RawMessage(trimmed)}, nil
	}

	env := &Envelope{Success: true, Data: raw.Data}
	if raw.Success != nil {
		env.Success = *raw.Success
	}

	// A JSON-null data field is an absent payload, not the literal `null`.
	if bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		env.Data = nil
	}

	// Unwrap the `{data: {data: [...]}}` variant exactly one level.
	if inner := innerData(env.Data); inner != nil {
		env.Data = inner
	}

	return env, nil
}

// innerData returns the nested `data` field when the payload is an object
// whose only meaningful content is another `data` wrapper, else nil.
func innerData(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil
	}
	inner, ok := obj["data"]
	if !ok || len(obj) > 1 {
		return nil
	}
	return inner
}

// errorMessage pulls a human-readable message out of an error response body.
func errorMessage(body []byte) string {
	var raw rawEnvelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &raw); err != nil {
		return ""
	}
	if raw.Message != "" {
		return raw.Message
	}
	return raw.Error
}

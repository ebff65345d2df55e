package gateway

import (
	"encoding/json"
	"testing"
)

func TestNormalizeEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantData    string
	}{
		{
			name:        "bare array",
			body:        `[{"id":1},{"id":2}]`,
			wantSuccess: true,
			wantData:    `[{"id":1},{"id":2}]`,
		},
		{
			name:        "success wrapper",
			body:        `{"success":true,"data":[{"id":1}]}`,
			wantSuccess: true,
			wantData:    `[{"id":1}]`,
		},
		{
			name:        "failure wrapper",
			body:        `{"success":false,"data":null}`,
			wantSuccess: false,
			wantData:    "",
		},
		{
			name:        "null data without success flag",
			body:        `{"data":null}`,
			wantSuccess: true,
			wantData:    "",
		},
		{
			name:        "double wrapped data",
			body:        `{"success":true,"data":{"data":[{"id":7}]}}`,
			wantSuccess: true,
			wantData:    `[{"id":7}]`,
		},
		{
			name:        "plain object payload",
			body:        `{"name":"Asha","mobile":"9999"}`,
			wantSuccess: true,
			wantData:    `{"name":"Asha","mobile":"9999"}`,
		},
		{
			name:        "empty body",
			body:        "",
			wantSuccess: true,
			wantData:    "",
		},
		{
			name:        "data object with siblings stays intact",
			body:        `{"success":true,"data":{"data":[1],"total":1}}`,
			wantSuccess: true,
			wantData:    `{"data":[1],"total":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := normalizeEnvelope([]byte(tt.body))
			if err != nil {
				t.Fatalf("normalizeEnvelope() error = %v", err)
			}
			if env.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", env.Success, tt.wantSuccess)
			}
			if got := normalizedJSON(t, env.Data); got != normalizedJSON(t, json.RawMessage(tt.wantData)) {
				t.Errorf("Data = %s, want %s", got, tt.wantData)
			}
		})
	}
}

func TestNormalizeEnvelope_Undecodable(t *testing.T) {
	if _, err := normalizeEnvelope([]byte(`<html>gateway error</html>`)); err == nil {
		t.Error("normalizeEnvelope() on HTML body error = nil, want error")
	}
}

func TestEnvelope_Decode(t *testing.T) {
	env := &Envelope{Success: true, Data: json.RawMessage(`[{"id":3,"quantity":2}]`)}

	var items []struct {
		ID       int64 `json:"id"`
		Quantity int   `json:"quantity"`
	}
	if err := env.Decode(&items); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 {
		t.Errorf("Decode() = %+v, want one item with id 3", items)
	}

	// Empty payload decodes to nothing, not an error.
	empty := &Envelope{Success: true}
	if err := empty.Decode(&items); err != nil {
		t.Errorf("Decode() on empty payload error = %v, want nil", err)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"success":false,"message":"invalid pincode"}`, "invalid pincode"},
		{"error field", `{"error":"session expired"}`, "session expired"},
		{"message wins over error", `{"message":"first","error":"second"}`, "first"},
		{"unparseable", `not json`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// normalizedJSON compacts raw JSON for comparison; empty input stays empty.
func normalizedJSON(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

// Package session defines the authentication session entity and its lifecycle states.
package session

import "encoding/json"

// Status represents the lifecycle state of the local session.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusRestoring     Status = "restoring"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Session is the local view of the authenticated user. A non-nil User always
// implies a non-empty Token; a token may exist before the profile is fetched.
type Session struct {
	Token  string   `json:"token,omitempty"`
	User   *Profile `json:"user,omitempty"`
	Status Status   `json:"status"`
}

// Authenticated reports whether the session carries a usable token.
func (s *Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != ""
}

// Profile is the user profile as delivered by the backend. The backend owns
// the shape; only name and mobile are contractual, every other key is carried
// through untouched so a newer backend field survives a local round trip.
type Profile struct {
	Name   string
	Mobile string
	Extra  map[string]any
}

// MarshalJSON flattens Extra alongside the contractual fields.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+2)
	for k, v := range p.Extra {
		out[k] = v
	}
	out["name"] = p.Name
	out["mobile"] = p.Mobile
	return json.Marshal(out)
}

// UnmarshalJSON pulls out name and mobile and keeps everything else in Extra.
func (p *Profile) UnmarshalJSON(data []byte) error {
	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["name"].(string); ok {
		p.Name = v
	}
	if v, ok := raw["mobile"].(string); ok {
		p.Mobile = v
	}
	delete(raw, "name")
	delete(raw, "mobile")
	if len(raw) > 0 {
		p.Extra = raw
	} else {
		p.Extra = nil
	}
	return nil
}

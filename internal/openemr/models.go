package openemr

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Patient is the clinic-side view of an OpenEMR patient. InsuranceID is the
// public patient id (pubpid), which practices use for the scheme member id.
type Patient struct {
	ID               string `json:"id"`
	UUID             string `json:"uuid,omitempty"`
	Name             string `json:"name"`
	DOB              string `json:"dob,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Address          string `json:"address,omitempty"`
	InsuranceID      string `json:"insurance_id,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// ConnectionStatus reports the outcome of a connectivity check.
type ConnectionStatus struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	BaseURL       string `json:"base_url"`
	Authenticated bool   `json:"authenticated"`
}

const (
	StatusConnected = "connected"
	StatusError     = "error"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// flexString accepts ids sent as JSON strings or numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type patientRecord struct {
	ID                  flexString `json:"id"`
	UUID                string     `json:"uuid"`
	FirstName           string     `json:"fname"`
	LastName            string     `json:"lname"`
	DOB                 string     `json:"DOB"`
	Sex                 string     `json:"sex"`
	PhoneHome           string     `json:"phone_home"`
	Email               string     `json:"email"`
	Street              string     `json:"street"`
	City                string     `json:"city"`
	PubPID              flexString `json:"pubpid"`
	ContactRelationship string     `json:"contact_relationship"`
}

func (p patientRecord) patient() Patient {
	return Patient{
		ID:               string(p.ID),
		UUID:             p.UUID,
		Name:             joinNonEmpty(p.FirstName, p.LastName),
		DOB:              p.DOB,
		Gender:           p.Sex,
		Phone:            p.PhoneHome,
		Email:            p.Email,
		Address:          joinNonEmpty(p.Street, p.City),
		InsuranceID:      string(p.PubPID),
		EmergencyContact: p.ContactRelationship,
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// decodeList reads either a bare JSON array or the standard API envelope
// {"data": [...]}.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	var out []T
	if len(raw) > 0 && raw[0] == '[' {
		err := json.Unmarshal(raw, &out)
		return out, err
	}
	var env struct {
		Data []T `json:"data"`
	}
	err := json.Unmarshal(raw, &env)
	return env.Data, err
}

// decodeOne reads a bare object or {"data": {...}}. ok is false when the
// envelope carries no record.
func decodeOne[T any](raw json.RawMessage) (T, bool, error) {
	var zero T
	raw = bytes.TrimSpace(raw)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false, err
	}
	if env.Data != nil {
		raw = bytes.TrimSpace(env.Data)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("[]")) {
			return zero, false, nil
		}
		if raw[0] == '[' {
			items, err := decodeList[T](raw)
			if err != nil || len(items) == 0 {
				return zero, false, err
			}
			return items[0], true, nil
		}
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, false, err
	}
	return out, true, nil
}

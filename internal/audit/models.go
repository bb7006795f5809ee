package audit

import "time"

// EventType classifies an audit entry.
type EventType string

const (
	EventAuthentication   EventType = "authentication"
	EventDataAccess       EventType = "data_access"
	EventDataModification EventType = "data_modification"
	EventAuthorization    EventType = "authorization"
	EventClaimSubmission  EventType = "claim_submission"
	EventBenefitCheck     EventType = "benefit_check"
	EventFHIRAccess       EventType = "fhir_access"
)

// Entry is one append-only audit record. UserID and ResourceID serialize as
// null when unknown.
type Entry struct {
	Timestamp    time.Time      `json:"timestamp"`
	EventType    EventType      `json:"event_type"`
	UserID       *string        `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   *string        `json:"resource_id"`
	Success      bool           `json:"success"`
	IPAddress    string         `json:"ip_address"`
	Details      map[string]any `json:"details"`
}

// StringPtr returns nil for "" so optional ids render as JSON null.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package client

import "strings"

// PatientQuery filters a Patient search. Empty fields are omitted.
type PatientQuery struct {
	Name      string
	Family    string
	BirthDate string
	Count     int
}

// PatientSummary is the flattened view of a FHIR Patient resource.
type PatientSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// Coverage carries the Coverage fields benefit checks use.
type Coverage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *Coverage) Active() bool {
	return c != nil && c.Status == "active"
}

// CapabilityStatement is the subset of /metadata used for connectivity
// checks.
type CapabilityStatement struct {
	FHIRVersion string `json:"fhirVersion"`
	Software    struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"software"`
}

type bundle[T any] struct {
	ResourceType string `json:"resourceType"`
	Total        int    `json:"total"`
	Entry        []struct {
		Resource T `json:"resource"`
	} `json:"entry"`
}

type humanName struct {
	Family string   `json:"family"`
	Given  []string `json:"given"`
	Text   string   `json:"text"`
}

type patientResource struct {
	ID        string      `json:"id"`
	Name      []humanName `json:"name"`
	Gender    string      `json:"gender"`
	BirthDate string      `json:"birthDate"`
}

func (p patientResource) summary() PatientSummary {
	return PatientSummary{
		ID:        p.ID,
		Name:      displayName(p.Name),
		Gender:    p.Gender,
		BirthDate: p.BirthDate,
	}
}

// displayName joins the first name entry as "given family", falling back to
// its text and then to "Unknown".
func displayName(names []humanName) string {
	if len(names) == 0 {
		return "Unknown"
	}
	n := names[0]
	full := strings.TrimSpace(strings.Join(append(append([]string{}, n.Given...), n.Family), " "))
	if full == "" {
		full = strings.TrimSpace(n.Text)
	}
	if full == "" {
		return "Unknown"
	}
	return full
}

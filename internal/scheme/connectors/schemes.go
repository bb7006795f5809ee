package connectors

import (
	"time"

	"medmcp/internal/scheme/models"
)

const day = 24 * time.Hour

func DiscoveryProfile() Profile {
	return Profile{
		Name:                "discovery",
		DisplayName:         "Discovery Health",
		IDPrefix:            "DISC",
		AuthNumberPrefix:    "AUTH",
		RemainingBenefit:    15000,
		AnnualLimit:         50000,
		CoPayment:           500,
		AuthPrefixes:        []string{"MRI"},
		ApprovedAuthAmount:  5000,
		AuthValidity:        30 * day,
		ClaimRate:           flatRate(0.80),
		StatusClaimApproved: 4000,
		StatusAuthApproved:  5000,
		StatusAuthValidity:  25 * day,
	}
}

// GEMSProfile approves emergencies on the spot and queues everything else
// for clinical review.
func GEMSProfile() Profile {
	return Profile{
		Name:               "gems",
		DisplayName:        "Government Employees Medical Scheme",
		IDPrefix:           "GEMS",
		AuthNumberPrefix:   "GEMS",
		RemainingBenefit:   25000,
		AnnualLimit:        75000,
		CoPayment:          200,
		AuthPrefixes:       []string{"MRI", "CT", "PET"},
		ApprovedAuthAmount: 7500,
		AuthValidity:       45 * day,
		ApproveAuth: func(req *models.AuthorizationRequest) bool {
			return req.Urgency == models.UrgencyEmergency
		},
		ClaimRate: func(total float64) float64 {
			if total < 5000 {
				return 0.90
			}
			return 0.85
		},
		StatusClaimApproved: 6750,
		StatusAuthApproved:  7500,
		StatusAuthValidity:  40 * day,
	}
}

func MedschemeProfile() Profile {
	return Profile{
		Name:                "medscheme",
		DisplayName:         "Medscheme",
		IDPrefix:            "MED",
		AuthNumberPrefix:    "MED",
		RemainingBenefit:    18000,
		AnnualLimit:         60000,
		CoPayment:           750,
		AuthPrefixes:        []string{"MRI", "CT", "SURG"},
		ApprovedAuthAmount:  6000,
		AuthValidity:        35 * day,
		ClaimRate:           flatRate(0.75),
		StatusClaimApproved: 3750,
		StatusAuthApproved:  6000,
		StatusAuthValidity:  30 * day,
	}
}

func NewDiscovery(apiKey string) *Connector { return New(DiscoveryProfile(), apiKey) }

func NewGEMS(apiKey string) *Connector { return New(GEMSProfile(), apiKey) }

func NewMedscheme(apiKey string) *Connector { return New(MedschemeProfile(), apiKey) }

func flatRate(rate float64) func(float64) float64 {
	return func(float64) float64 { return rate }
}

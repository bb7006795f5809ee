package connectors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medmcp/internal/scheme/models"
	"medmcp/pkg/requestcontext"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func testCtx() context.Context {
	return requestcontext.WithTime(context.Background(), fixedNow)
}

func TestCheckBenefits(t *testing.T) {
	tests := []struct {
		name         string
		connector    *Connector
		code         string
		remaining    float64
		limit        float64
		copay        float64
		authRequired bool
	}{
		{name: "discovery MRI", connector: NewDiscovery(""), code: "MRI001", remaining: 15000, limit: 50000, copay: 500, authRequired: true},
		{name: "discovery CT", connector: NewDiscovery(""), code: "CT001", remaining: 15000, limit: 50000, copay: 500},
		{name: "gems PET", connector: NewGEMS(""), code: "PET-SCAN", remaining: 25000, limit: 75000, copay: 200, authRequired: true},
		{name: "gems consult", connector: NewGEMS(""), code: "CONS01", remaining: 25000, limit: 75000, copay: 200},
		{name: "medscheme surgery", connector: NewMedscheme(""), code: "SURG42", remaining: 18000, limit: 60000, copay: 750, authRequired: true},
		{name: "medscheme prefix only", connector: NewMedscheme(""), code: "XMRI01", remaining: 18000, limit: 60000, copay: 750},
		{name: "lower case code", connector: NewMedscheme(""), code: "ct-head", remaining: 18000, limit: 60000, copay: 750, authRequired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.connector.CheckBenefits(testCtx(), &models.BenefitCheck{MemberID: "M1", ProcedureCode: tt.code})
			require.NoError(t, err)
			assert.Equal(t, "M1", res.MemberID)
			assert.Equal(t, tt.code, res.ProcedureCode)
			assert.True(t, res.BenefitAvailable)
			assert.Equal(t, tt.remaining, res.RemainingBenefit)
			assert.Equal(t, tt.limit, res.AnnualLimit)
			assert.Equal(t, tt.copay, res.CoPaymentRequired)
			assert.Equal(t, tt.authRequired, res.AuthorizationRequired)
		})
	}
}

func TestRequestAuthorization(t *testing.T) {
	t.Run("discovery approves with numbered authorization", func(t *testing.T) {
		res, err := NewDiscovery("").RequestAuthorization(testCtx(), &models.AuthorizationRequest{ProcedureCode: "MRI001", Urgency: models.UrgencyRoutine})
		require.NoError(t, err)
		assert.Equal(t, "DISC-AUTH-20250314092653", res.AuthorizationID)
		assert.Equal(t, "DISC-REF-20250314092653", res.ReferenceNumber)
		assert.Equal(t, models.StatusApproved, res.Status)
		require.NotNil(t, res.AuthorizationNumber)
		assert.Equal(t, "AUTH20250314092653", *res.AuthorizationNumber)
		require.NotNil(t, res.ApprovedAmount)
		assert.Equal(t, 5000.0, *res.ApprovedAmount)
		require.NotNil(t, res.ValidUntil)
		assert.Equal(t, fixedNow.Add(30*day), *res.ValidUntil)
	})

	t.Run("gems leaves routine requests pending", func(t *testing.T) {
		res, err := NewGEMS("").RequestAuthorization(testCtx(), &models.AuthorizationRequest{ProcedureCode: "CT001", Urgency: models.UrgencyRoutine})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, res.Status)
		assert.Equal(t, "GEMS-AUTH-20250314092653", res.AuthorizationID)
		assert.Nil(t, res.AuthorizationNumber)
		assert.Nil(t, res.ApprovedAmount)
		assert.Nil(t, res.ValidUntil)
	})

	t.Run("gems approves emergencies", func(t *testing.T) {
		res, err := NewGEMS("").RequestAuthorization(testCtx(), &models.AuthorizationRequest{ProcedureCode: "CT001", Urgency: models.UrgencyEmergency})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, res.Status)
		assert.Equal(t, "GEMS20250314092653", *res.AuthorizationNumber)
		assert.Equal(t, 7500.0, *res.ApprovedAmount)
		assert.Equal(t, fixedNow.Add(45*day), *res.ValidUntil)
	})

	t.Run("medscheme approves", func(t *testing.T) {
		res, err := NewMedscheme("").RequestAuthorization(testCtx(), &models.AuthorizationRequest{ProcedureCode: "SURG1"})
		require.NoError(t, err)
		assert.Equal(t, "MED20250314092653", *res.AuthorizationNumber)
		assert.Equal(t, 6000.0, *res.ApprovedAmount)
		assert.Equal(t, fixedNow.Add(35*day), *res.ValidUntil)
	})
}

func TestSubmitClaim(t *testing.T) {
	tests := []struct {
		name      string
		connector *Connector
		total     float64
		approved  float64
		prefix    string
	}{
		{name: "discovery pays 80 percent", connector: NewDiscovery(""), total: 1000, approved: 800, prefix: "DISC"},
		{name: "gems pays 90 percent under 5000", connector: NewGEMS(""), total: 4999.99, approved: 4499.99, prefix: "GEMS"},
		{name: "gems pays 85 percent from 5000", connector: NewGEMS(""), total: 5000, approved: 4250, prefix: "GEMS"},
		{name: "medscheme pays 75 percent", connector: NewMedscheme(""), total: 2000, approved: 1500, prefix: "MED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.connector.SubmitClaim(testCtx(), &models.Claim{TotalClaimAmount: tt.total})
			require.NoError(t, err)
			assert.Equal(t, models.StatusApproved, res.Status)
			assert.Equal(t, tt.prefix+"-CLAIM-20250314092653", res.ClaimID)
			assert.Equal(t, tt.prefix+"-REF-20250314092653", res.ReferenceNumber)
			require.NotNil(t, res.ApprovedAmount)
			assert.InDelta(t, tt.approved, *res.ApprovedAmount, 0.001)
			assert.Equal(t, fixedNow, res.ProcessedDate)
		})
	}
}

func TestStatusLookups(t *testing.T) {
	tests := []struct {
		name          string
		connector     *Connector
		claimApproved float64
		authApproved  float64
		authNumber    string
		validity      time.Duration
		ref           string
	}{
		{name: "discovery", connector: NewDiscovery(""), claimApproved: 4000, authApproved: 5000, authNumber: "AUTH42", validity: 25 * day, ref: "DISC-REF-42"},
		{name: "gems", connector: NewGEMS(""), claimApproved: 6750, authApproved: 7500, authNumber: "GEMS42", validity: 40 * day, ref: "GEMS-REF-42"},
		{name: "medscheme", connector: NewMedscheme(""), claimApproved: 3750, authApproved: 6000, authNumber: "MED42", validity: 30 * day, ref: "MED-REF-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := tt.connector.GetClaimStatus(testCtx(), "42")
			require.NoError(t, err)
			assert.Equal(t, "42", claim.ClaimID)
			assert.Equal(t, models.StatusProcessed, claim.Status)
			assert.Equal(t, tt.claimApproved, *claim.ApprovedAmount)
			assert.Equal(t, tt.ref, claim.ReferenceNumber)

			auth, err := tt.connector.GetAuthorizationStatus(testCtx(), "42")
			require.NoError(t, err)
			assert.Equal(t, models.StatusApproved, auth.Status)
			assert.Equal(t, tt.authNumber, *auth.AuthorizationNumber)
			assert.Equal(t, tt.authApproved, *auth.ApprovedAmount)
			assert.Equal(t, fixedNow.Add(tt.validity), *auth.ValidUntil)
			assert.Equal(t, tt.ref, auth.ReferenceNumber)
		})
	}
}

func TestMode(t *testing.T) {
	assert.Equal(t, "mock", NewDiscovery("").Mode())
	assert.Equal(t, "live", NewDiscovery("key").Mode())
	assert.Equal(t, "gems", NewGEMS("").Name())
	assert.Equal(t, "Medscheme", NewMedscheme("").DisplayName())
}

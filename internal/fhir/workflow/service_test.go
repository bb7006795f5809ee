package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"medmcp/internal/audit"
	"medmcp/internal/fhir/workflow/mocks"
	"medmcp/internal/openemr"
	schememodels "medmcp/internal/scheme/models"
	dErrors "medmcp/pkg/domain-errors"
	"medmcp/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/workflow-mocks.go -package=mocks Clinic,Schemes,AuditPublisher

type WorkflowServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	clinic  *mocks.MockClinic
	schemes *mocks.MockSchemes
	sink    *audit.InMemorySink
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestWorkflowServiceSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceSuite))
}

func (s *WorkflowServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clinic = mocks.NewMockClinic(s.ctrl)
	s.schemes = mocks.NewMockSchemes(s.ctrl)
	s.sink = audit.NewInMemorySink()
	s.now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	svc, err := New(s.clinic, s.schemes, audit.NewPublisher(s.sink))
	s.Require().NoError(err)
	s.service = svc
}

var thandi = &openemr.Patient{ID: "1", Name: "Thandi Mokoena", InsuranceID: "DISC123456"}

func visit() *VisitRequest {
	req := &VisitRequest{
		MemberID:   " DISC123456 ",
		ProviderID: "PR-1",
		Procedures: []Procedure{
			{Code: "cons001", Name: "General Consultation", Cost: 500},
			{Code: "MRI001", Name: "Brain MRI with Contrast", Cost: 3500.5},
		},
	}
	req.Normalize()
	return req
}

func ptr[T any](v T) *T { return &v }

func (s *WorkflowServiceSuite) TestNew() {
	_, err := New(nil, s.schemes, audit.NewPublisher(s.sink))
	s.EqualError(err, "clinic client is required")
	_, err = New(s.clinic, nil, audit.NewPublisher(s.sink))
	s.EqualError(err, "scheme service is required")
	_, err = New(s.clinic, s.schemes, nil)
	s.EqualError(err, "audit publisher is required")
}

func (s *WorkflowServiceSuite) TestPatientLookup() {
	s.Run("both systems answer", func() {
		s.SetupTest()
		s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", &schememodels.BenefitCheck{MemberID: "DISC123456", ProcedureCode: "CONS001"}).
			Return(&schememodels.BenefitResult{BenefitAvailable: true, RemainingBenefit: 12000}, nil)
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "DISC123456").Return(thandi, nil)

		req := &LookupRequest{MemberID: "DISC123456"}
		req.Normalize()
		res := s.service.PatientLookup(s.ctx, req)

		s.Equal("fhir", res.SchemeName)
		s.Equal("HAPI FHIR", res.FHIRData.Source)
		s.Equal("OpenEMR", res.OpenEMRData.Source)
		s.Equal(&Profile{
			MemberID:          "DISC123456",
			PatientName:       "Thandi Mokoena",
			BenefitsAvailable: true,
			RemainingBenefit:  12000,
			ClinicRecords:     "available",
			IntegrationStatus: "complete",
		}, res.IntegratedProfile)

		entries := s.sink.Filter(audit.EventFHIRAccess)
		s.Require().Len(entries, 1)
		s.Equal("patient_lookup", entries[0].Action)
		s.Equal(true, entries[0].Details["has_fhir"])
		s.Equal(true, entries[0].Details["has_openemr"])
	})

	s.Run("clinic outage reported inline", func() {
		s.SetupTest()
		s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", gomock.Any()).
			Return(&schememodels.BenefitResult{BenefitAvailable: true}, nil)
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "DISC123456").
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "OpenEMR unreachable"))

		res := s.service.PatientLookup(s.ctx, &LookupRequest{MemberID: "DISC123456", SchemeName: "fhir"})
		s.NotNil(res.FHIRData.Benefits)
		s.Equal(&ClinicData{Error: "OpenEMR unreachable"}, res.OpenEMRData)
		s.Nil(res.IntegratedProfile)
	})

	s.Run("scheme failure reported inline", func() {
		s.SetupTest()
		s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "FHIR server unreachable"))
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "DISC123456").Return(thandi, nil)

		res := s.service.PatientLookup(s.ctx, &LookupRequest{MemberID: "DISC123456", SchemeName: "fhir"})
		s.Equal(&FHIRData{Error: "FHIR server unreachable"}, res.FHIRData)
		s.Equal(thandi, res.OpenEMRData.Patient)
		s.Nil(res.IntegratedProfile)
	})

	s.Run("other schemes skip the FHIR check", func() {
		s.SetupTest()
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "G1").Return(nil, nil)

		res := s.service.PatientLookup(s.ctx, &LookupRequest{MemberID: "G1", SchemeName: "gems"})
		s.Nil(res.FHIRData)
		s.Nil(res.OpenEMRData)
		s.Nil(res.IntegratedProfile)
	})
}

func (s *WorkflowServiceSuite) TestCompleteVisit() {
	s.Run("authorises where required and claims everything", func() {
		s.SetupTest()
		req := visit()
		gomock.InOrder(
			s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "DISC123456").Return(thandi, nil),
			s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", &schememodels.BenefitCheck{MemberID: "DISC123456", ProcedureCode: "CONS001"}).
				Return(&schememodels.BenefitResult{BenefitAvailable: true}, nil),
			s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", &schememodels.BenefitCheck{MemberID: "DISC123456", ProcedureCode: "MRI001"}).
				Return(&schememodels.BenefitResult{BenefitAvailable: true, AuthorizationRequired: true}, nil),
			s.schemes.EXPECT().RequestAuthorization(gomock.Any(), "fhir", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, r *schememodels.AuthorizationRequest) (*schememodels.AuthorizationResult, error) {
					s.Equal("MRI001", r.ProcedureCode)
					s.Equal("Thandi Mokoena", r.PatientName)
					s.Equal("PR-1", r.ProviderID)
					s.True(r.RequestedDate.Equal(s.now))
					return &schememodels.AuthorizationResult{AuthorizationID: "AUTH-9", Status: schememodels.StatusApproved}, nil
				}),
			s.schemes.EXPECT().SubmitClaim(gomock.Any(), "fhir", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, c *schememodels.Claim) (*schememodels.ClaimResult, error) {
					s.Len(c.ClaimItems, 2)
					s.Equal(4000.5, c.TotalClaimAmount)
					s.Equal(3500.5, c.ClaimItems[1].UnitPrice)
					s.Equal("Brain MRI with Contrast", c.ClaimItems[1].Description)
					return &schememodels.ClaimResult{ClaimID: "CLM-3", Status: schememodels.StatusApproved, ApprovedAmount: ptr(3200.4)}, nil
				}),
		)

		res, err := s.service.CompleteVisit(s.ctx, req)
		s.Require().NoError(err)
		s.True(res.Completed)
		s.Equal([]string{
			"Looking up patient in clinic system",
			"Found patient: Thandi Mokoena",
			"Checking medical scheme benefits",
			"Checked benefits for 2 procedures",
			"Requesting authorization for Brain MRI with Contrast",
			"Authorization approved for Brain MRI with Contrast",
			"Submitting claim to medical scheme",
			"Claim submitted: approved - R3,200.40",
			"Visit workflow complete",
		}, res.Steps)
		s.Equal([]VisitAuthorization{{Procedure: "Brain MRI with Contrast", AuthorizationID: "AUTH-9", Status: "approved"}}, res.AuthorizationResults)
		s.Equal("CLM-3", res.ClaimResult.ClaimID)
		s.False(res.BenefitResults[0].AuthorizationRequired)

		entries := s.sink.Filter(audit.EventClaimSubmission)
		s.Require().Len(entries, 1)
		s.True(entries[0].Success)
		s.Equal("complete_visit", entries[0].Action)
		s.Equal(4000.5, entries[0].Details["total_amount"])
		s.Equal(1, entries[0].Details["authorizations"])
	})

	s.Run("unknown patient stops after lookup", func() {
		s.SetupTest()
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), "DISC123456").Return(nil, nil)

		res, err := s.service.CompleteVisit(s.ctx, visit())
		s.Require().NoError(err)
		s.False(res.Completed)
		s.Equal([]string{"Looking up patient in clinic system", "Patient not found in clinic system"}, res.Steps)
		s.Nil(res.ClaimResult)

		entries := s.sink.Filter(audit.EventClaimSubmission)
		s.Require().Len(entries, 1)
		s.False(entries[0].Success)
		s.Equal("patient_not_found", entries[0].Details["reason"])
	})

	s.Run("clinic outage aborts", func() {
		s.SetupTest()
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "OpenEMR is temporarily unavailable"))

		_, err := s.service.CompleteVisit(s.ctx, visit())
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Equal("clinic_lookup", s.sink.Filter(audit.EventClaimSubmission)[0].Details["stage"])
	})

	s.Run("scheme rejection aborts before claiming", func() {
		s.SetupTest()
		s.clinic.EXPECT().FindByInsuranceID(gomock.Any(), gomock.Any()).Return(thandi, nil)
		s.schemes.EXPECT().CheckBenefits(gomock.Any(), "fhir", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Member not found"))

		_, err := s.service.CompleteVisit(s.ctx, visit())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("benefit_check", s.sink.Filter(audit.EventClaimSubmission)[0].Details["stage"])
	})
}

func (s *WorkflowServiceSuite) TestVisitRequestValidation() {
	req := &VisitRequest{MemberID: "M1", ProviderID: "P1"}
	req.Normalize()
	s.Equal("fhir", req.SchemeName)
	s.True(dErrors.HasCode(req.Validate(), dErrors.CodeValidation))

	req.Procedures = []Procedure{{Code: "CONS 1", Name: "x", Cost: 1}}
	s.Error(req.Validate())

	req.Procedures = []Procedure{{Code: "CONS001", Name: "Consult", Cost: 0}}
	s.Error(req.Validate())
}

func (s *WorkflowServiceSuite) TestFormatRand() {
	s.Equal("R0.00", formatRand(0))
	s.Equal("R999.99", formatRand(999.99))
	s.Equal("R1,000.00", formatRand(1000))
	s.Equal("R1,234,567.89", formatRand(1234567.891))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"medmcp/internal/audit"
	"medmcp/internal/scheme/models"
	"medmcp/internal/scheme/service/mocks"
	dErrors "medmcp/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/service-mocks.go -package=mocks Connector,AuditPublisher,Recorder

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	connector *mocks.MockConnector
	auditor   *mocks.MockAuditPublisher
	recorder  *mocks.MockRecorder
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.connector = mocks.NewMockConnector(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.recorder = mocks.NewMockRecorder(s.ctrl)
	s.ctx = context.Background()

	s.connector.EXPECT().Name().Return("discovery").AnyTimes()
	s.connector.EXPECT().DisplayName().Return("Discovery Health").AnyTimes()
	s.connector.EXPECT().Mode().Return("mock").AnyTimes()

	svc, err := New([]Connector{s.connector}, s.auditor, WithRecorder(s.recorder))
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TestNew_Validation() {
	_, err := New([]Connector{s.connector}, nil)
	s.Error(err)

	_, err = New(nil, s.auditor)
	s.Error(err)

	_, err = New([]Connector{s.connector, s.connector}, s.auditor)
	s.ErrorContains(err, "duplicate")
}

func (s *ServiceSuite) TestAvailable() {
	other := mocks.NewMockConnector(s.ctrl)
	other.EXPECT().Name().Return("GEMS").AnyTimes()
	other.EXPECT().DisplayName().Return("Government Employees Medical Scheme").AnyTimes()
	other.EXPECT().Mode().Return("live").AnyTimes()

	svc, err := New([]Connector{other, s.connector}, s.auditor)
	s.Require().NoError(err)

	got := svc.Available()
	s.Equal([]string{"discovery", "gems"}, got.Schemes)
	s.Equal(2, got.Count)
	s.Equal("live", got.Details[1].Mode)
}

func (s *ServiceSuite) TestUnknownSchemeIsNotFound() {
	_, err := s.service.CheckBenefits(s.ctx, "bonitas", &models.BenefitCheck{MemberID: "M1", ProcedureCode: "MRI001"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("Scheme 'bonitas' not supported", err.Error())
}

func (s *ServiceSuite) TestSchemeLookupIgnoresCase() {
	c, err := s.service.Connector(" Discovery ")
	s.Require().NoError(err)
	s.Equal("discovery", c.Name())
}

func (s *ServiceSuite) TestCheckBenefits() {
	req := &models.BenefitCheck{MemberID: "M1", ProcedureCode: "MRI001"}
	res := &models.BenefitResult{MemberID: "M1", ProcedureCode: "MRI001", BenefitAvailable: true, AuthorizationRequired: true}

	s.connector.EXPECT().CheckBenefits(gomock.Any(), req).Return(res, nil)
	s.recorder.EXPECT().RecordBenefitCheck("discovery", "MRI001", true)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventBenefitCheck, "check_benefits", "Member", "M1", true, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ audit.EventType, _, _, _ string, _ bool, details map[string]any) error {
			s.Equal("discovery", details["scheme"])
			s.Equal(true, details["authorization_required"])
			return nil
		})

	got, err := s.service.CheckBenefits(s.ctx, "discovery", req)
	s.Require().NoError(err)
	s.Same(res, got)
}

func (s *ServiceSuite) TestCheckBenefits_ConnectorFailure() {
	req := &models.BenefitCheck{MemberID: "M1", ProcedureCode: "MRI001"}
	s.connector.EXPECT().CheckBenefits(gomock.Any(), req).Return(nil, errors.New("dial tcp: refused"))
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventBenefitCheck, "check_benefits", "Member", "M1", false, gomock.Any()).Return(nil)

	_, err := s.service.CheckBenefits(s.ctx, "discovery", req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.NotContains(err.Error(), "dial tcp")
}

func (s *ServiceSuite) TestCheckBenefits_ConnectorDeadline() {
	req := &models.BenefitCheck{MemberID: "M1", ProcedureCode: "MRI001"}
	s.connector.EXPECT().CheckBenefits(gomock.Any(), req).Return(nil, context.DeadlineExceeded)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), false, gomock.Any()).Return(nil)

	_, err := s.service.CheckBenefits(s.ctx, "discovery", req)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *ServiceSuite) TestAuditFailureDoesNotFailOperation() {
	req := &models.BenefitCheck{MemberID: "M1", ProcedureCode: "CT001"}
	s.connector.EXPECT().CheckBenefits(gomock.Any(), req).Return(&models.BenefitResult{BenefitAvailable: true}, nil)
	s.recorder.EXPECT().RecordBenefitCheck("discovery", "CT001", true)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	_, err := s.service.CheckBenefits(s.ctx, "discovery", req)
	s.NoError(err)
}

func (s *ServiceSuite) TestRequestAuthorization() {
	amount := 5000.0
	req := &models.AuthorizationRequest{MemberID: "M1", ProcedureCode: "MRI001", Urgency: models.UrgencyUrgent}
	res := &models.AuthorizationResult{AuthorizationID: "DISC-AUTH-1", Status: models.StatusApproved, ApprovedAmount: &amount}

	s.connector.EXPECT().RequestAuthorization(gomock.Any(), req).Return(res, nil)
	s.recorder.EXPECT().RecordAuthorization("discovery", "MRI001", models.StatusApproved, 5000.0)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventAuthorization, "request_authorization", "Authorization", "DISC-AUTH-1", true, gomock.Any()).Return(nil)

	got, err := s.service.RequestAuthorization(s.ctx, "discovery", req)
	s.Require().NoError(err)
	s.Equal("DISC-AUTH-1", got.AuthorizationID)
}

func (s *ServiceSuite) TestRequestAuthorization_PendingRecordsZeroAmount() {
	req := &models.AuthorizationRequest{MemberID: "M1", ProcedureCode: "CT001", Urgency: models.UrgencyRoutine}
	res := &models.AuthorizationResult{AuthorizationID: "GEMS-AUTH-1", Status: models.StatusPending}

	s.connector.EXPECT().RequestAuthorization(gomock.Any(), req).Return(res, nil)
	s.recorder.EXPECT().RecordAuthorization("discovery", "CT001", models.StatusPending, 0.0)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventAuthorization, gomock.Any(), gomock.Any(), "GEMS-AUTH-1", true, gomock.Any()).Return(nil)

	_, err := s.service.RequestAuthorization(s.ctx, "discovery", req)
	s.NoError(err)
}

func (s *ServiceSuite) TestGetAuthorizationStatus() {
	s.Run("blank id", func() {
		_, err := s.service.GetAuthorizationStatus(s.ctx, "discovery", " ")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("audited read", func() {
		s.connector.EXPECT().GetAuthorizationStatus(gomock.Any(), "42").Return(&models.AuthorizationResult{AuthorizationID: "42"}, nil)
		s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventDataAccess, "get_authorization_status", "Authorization", "42", true, gomock.Any()).Return(nil)

		got, err := s.service.GetAuthorizationStatus(s.ctx, "discovery", "42")
		s.Require().NoError(err)
		s.Equal("42", got.AuthorizationID)
	})
}

func (s *ServiceSuite) TestSubmitClaim() {
	approved := 800.0
	claim := &models.Claim{
		MemberID:         "M1",
		DateOfService:    models.NewTimestamp(time.Now()),
		ClaimItems:       []models.ClaimItem{{ProcedureCode: "CONS01"}, {ProcedureCode: "XRAY01"}},
		TotalClaimAmount: 1000,
	}
	res := &models.ClaimResult{ClaimID: "DISC-CLAIM-1", Status: models.StatusApproved, ApprovedAmount: &approved}

	s.connector.EXPECT().SubmitClaim(gomock.Any(), claim).Return(res, nil)
	s.recorder.EXPECT().RecordClaim("discovery", 1000.0, []string{"CONS01", "XRAY01"}, models.StatusApproved, "M1")
	s.auditor.EXPECT().LogClaimTransaction(gomock.Any(), "discovery", "DISC-CLAIM-1", models.StatusApproved, 1000.0, 800.0).Return(nil)

	got, err := s.service.SubmitClaim(s.ctx, "discovery", claim)
	s.Require().NoError(err)
	s.Equal("DISC-CLAIM-1", got.ClaimID)
}

func (s *ServiceSuite) TestSubmitClaim_ConnectorFailureAuditedAsRejected() {
	claim := &models.Claim{MemberID: "M1", TotalClaimAmount: 1000}
	s.connector.EXPECT().SubmitClaim(gomock.Any(), claim).Return(nil, dErrors.New(dErrors.CodeBadRequest, "duplicate claim"))
	s.auditor.EXPECT().LogClaimTransaction(gomock.Any(), "discovery", "", models.StatusRejected, 1000.0, 0.0).Return(nil)

	_, err := s.service.SubmitClaim(s.ctx, "discovery", claim)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Equal("duplicate claim", err.Error())
}

func (s *ServiceSuite) TestGetClaimStatus() {
	s.connector.EXPECT().GetClaimStatus(gomock.Any(), "C1").Return(&models.ClaimResult{ClaimID: "C1", Status: models.StatusProcessed}, nil)
	s.auditor.EXPECT().LogDataAccess(gomock.Any(), audit.EventDataAccess, "get_claim_status", "Claim", "C1", true, gomock.Any()).Return(nil)

	got, err := s.service.GetClaimStatus(s.ctx, "discovery", "C1")
	s.Require().NoError(err)
	s.Equal(models.StatusProcessed, got.Status)
}

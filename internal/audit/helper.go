package audit

import (
	"context"
	"strings"

	"github.com/mssola/useragent"

	"medmcp/pkg/requestcontext"
)

// LogAuthentication records a login or token verification outcome.
func (p *Publisher) LogAuthentication(ctx context.Context, userID, action string, success bool, reason string) error {
	details := map[string]any{}
	if reason != "" {
		details["failure_reason"] = reason
	}
	if client := DescribeClient(requestcontext.UserAgent(ctx)); client != nil {
		details["client"] = client
	}
	return p.Record(ctx, Entry{
		EventType:    EventAuthentication,
		UserID:       StringPtr(userID),
		Action:       action,
		ResourceType: "User",
		ResourceID:   StringPtr(userID),
		Success:      success,
		IPAddress:    requestcontext.ClientIP(ctx),
		Details:      details,
	})
}

// LogDataAccess records a read or write against a domain resource.
func (p *Publisher) LogDataAccess(ctx context.Context, eventType EventType, action, resourceType, resourceID string, success bool, details map[string]any) error {
	return p.Record(ctx, Entry{
		EventType:    eventType,
		UserID:       StringPtr(requestcontext.Subject(ctx)),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   StringPtr(resourceID),
		Success:      success,
		IPAddress:    requestcontext.ClientIP(ctx),
		Details:      details,
	})
}

// LogClaimTransaction records a claim submission with its financial outcome.
func (p *Publisher) LogClaimTransaction(ctx context.Context, scheme, claimID, status string, claimed, approved float64) error {
	return p.LogDataAccess(ctx, EventClaimSubmission, "submit_claim", "Claim", claimID, status != "rejected", map[string]any{
		"scheme":          scheme,
		"status":          status,
		"amount_claimed":  claimed,
		"amount_approved": approved,
	})
}

// DescribeClient summarizes a User-Agent for audit details. Returns nil for
// an empty header.
func DescribeClient(userAgent string) map[string]any {
	if strings.TrimSpace(userAgent) == "" {
		return nil
	}
	ua := useragent.New(userAgent)
	browser, version := ua.Browser()
	return map[string]any{
		"browser": strings.TrimSpace(browser + " " + version),
		"os":      ua.OS(),
		"mobile":  ua.Mobile(),
		"bot":     ua.Bot(),
	}
}

// Package connector exposes a FHIR server as a medical scheme. Benefit
// checks read Coverage from the server; the remaining operations answer from
// the sandbox profile.
package connector

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"medmcp/internal/fhir/client"
	"medmcp/internal/scheme/connectors"
	"medmcp/internal/scheme/models"
	"medmcp/pkg/platform/circuit"
)

const (
	day = 24 * time.Hour

	maxCachedMembers = 10000
)

// CoverageFinder is satisfied by *client.Client.
type CoverageFinder interface {
	FindCoverage(ctx context.Context, memberID string) (*client.Coverage, error)
}

// Profile returns the sandbox answers used for the operations FHIR does not
// serve and for fallback benefits when the server is down.
func Profile() connectors.Profile {
	return connectors.Profile{
		Name:               "fhir",
		DisplayName:        "HAPI FHIR",
		IDPrefix:           "FHIR",
		AuthNumberPrefix:   "FHIR",
		RemainingBenefit:   20000,
		AnnualLimit:        50000,
		CoPayment:          400,
		AuthPrefixes:       []string{"MRI", "CT", "PET", "SURG"},
		ApprovedAuthAmount: 8000,
		AuthValidity:       60 * day,
		ApproveAuth: func(req *models.AuthorizationRequest) bool {
			return req.Urgency != models.UrgencyRoutine
		},
		ClaimRate:           func(float64) float64 { return 0.85 },
		StatusClaimApproved: 5000,
		StatusAuthApproved:  7000,
		StatusAuthValidity:  50 * day,
	}
}

type Option func(*Connector)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Connector) {
		if b != nil {
			c.breaker = b
		}
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Connector) {
		c.cache = newCoverageCache(ttl)
	}
}

type Connector struct {
	*connectors.Connector
	coverage CoverageFinder
	breaker  *circuit.Breaker
	cache    *coverageCache
	logger   *slog.Logger
}

func New(coverage CoverageFinder, opts ...Option) *Connector {
	c := &Connector{
		Connector: connectors.New(Profile(), ""),
		coverage:  coverage,
		breaker:   circuit.New("fhir_coverage"),
		cache:     newCoverageCache(5 * time.Minute),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode is "live": benefit checks go to the FHIR server.
func (c *Connector) Mode() string {
	return "live"
}

// CheckBenefits never fails. When the FHIR server errors it answers from the
// last cached coverage for the member, then from the sandbox profile with
// authorization required.
func (c *Connector) CheckBenefits(ctx context.Context, req *models.BenefitCheck) (*models.BenefitResult, error) {
	if !c.breaker.Allow() {
		if cov, found, ok := c.cache.Get(req.MemberID); ok {
			c.logger.WarnContext(ctx, "circuit open, using cached coverage",
				"circuit", c.breaker.Name(),
			)
			return benefitsFromCoverage(req, cov, found), nil
		}
	}

	cov, err := c.coverage.FindCoverage(ctx, req.MemberID)
	if err != nil {
		useFallback, change := c.breaker.RecordFailure()
		if change.Opened {
			c.logger.ErrorContext(ctx, "circuit breaker opened",
				"circuit", c.breaker.Name(),
				"error", err,
			)
		}
		if useFallback {
			if cached, found, ok := c.cache.Get(req.MemberID); ok {
				return benefitsFromCoverage(req, cached, found), nil
			}
		}
		c.logger.WarnContext(ctx, "fhir coverage lookup failed, answering from fallback",
			"error", err,
		)
		return c.fallback(req), nil
	}

	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "circuit", c.breaker.Name())
	}
	c.cache.Set(req.MemberID, cov)
	return benefitsFromCoverage(req, cov, cov != nil), nil
}

func (c *Connector) fallback(req *models.BenefitCheck) *models.BenefitResult {
	p := Profile()
	return &models.BenefitResult{
		MemberID:              req.MemberID,
		ProcedureCode:         req.ProcedureCode,
		BenefitAvailable:      true,
		RemainingBenefit:      p.RemainingBenefit,
		AnnualLimit:           p.AnnualLimit,
		CoPaymentRequired:     p.CoPayment,
		AuthorizationRequired: true,
	}
}

// benefitsFromCoverage maps a Coverage resource onto benefits. Members the
// server has no Coverage for get the default plan.
func benefitsFromCoverage(req *models.BenefitCheck, cov *client.Coverage, found bool) *models.BenefitResult {
	if !found {
		return &models.BenefitResult{
			MemberID:              req.MemberID,
			ProcedureCode:         req.ProcedureCode,
			BenefitAvailable:      true,
			RemainingBenefit:      25000,
			AnnualLimit:           50000,
			CoPaymentRequired:     300,
			AuthorizationRequired: hasPrefix(req.ProcedureCode, "MRI", "CT"),
		}
	}
	return &models.BenefitResult{
		MemberID:              req.MemberID,
		ProcedureCode:         req.ProcedureCode,
		BenefitAvailable:      cov.Active(),
		RemainingBenefit:      35000,
		AnnualLimit:           50000,
		CoPaymentRequired:     500,
		AuthorizationRequired: hasPrefix(req.ProcedureCode, "MRI", "CT", "PET", "SURG"),
	}
}

func hasPrefix(code string, prefixes ...string) bool {
	code = strings.ToUpper(code)
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

type cacheEntry struct {
	coverage  *client.Coverage
	found     bool
	expiresAt time.Time
}

// coverageCache remembers the last answer per member, including "no
// coverage", for use while the circuit is open.
type coverageCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newCoverageCache(ttl time.Duration) *coverageCache {
	return &coverageCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *coverageCache) Get(memberID string) (*client.Coverage, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[memberID]
	if !ok {
		return nil, false, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, memberID)
		return nil, false, false
	}
	return e.coverage, e.found, true
}

func (c *coverageCache) Set(memberID string, cov *client.Coverage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= maxCachedMembers {
		now := time.Now()
		for id, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, id)
			}
		}
	}
	c.entries[memberID] = cacheEntry{coverage: cov, found: cov != nil, expiresAt: time.Now().Add(c.ttl)}
}

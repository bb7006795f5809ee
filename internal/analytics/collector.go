// Package analytics aggregates scheme activity for the reporting endpoints.
// Counters live for the process lifetime only.
package analytics

import (
	"sort"
	"sync"
	"time"

	"medmcp/internal/analytics/metrics"
)

const (
	dateLayout = "2006-01-02"

	// dailyRetention bounds the per-day map to the widest trend window the
	// API accepts.
	dailyRetention = 366

	DefaultTopProcedures = 10
	MaxTopProcedures     = 100
	DefaultTrendDays     = 30
	MaxTrendDays         = 365

	dashboardTrendDays = 7
	healthTopN         = 5

	statusApproved = "approved"
)

type Option func(*Collector)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Collector) {
		c.metrics = m
	}
}

// WithClock replaces time.Now. Tests use it to pin the day buckets.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		if now != nil {
			c.now = now
		}
	}
}

// Collector is safe for concurrent use.
type Collector struct {
	mu sync.RWMutex

	claims                 int
	approvedClaims         int
	claimedAmount          float64
	authorizations         int
	approvedAuthorizations int
	benefitChecks          int

	schemes    map[string]*SchemeStats
	procedures map[string]int
	daily      map[string]*DailyStats
	patients   map[string]struct{}

	startedAt time.Time
	now       func() time.Time
	metrics   *metrics.Metrics
}

func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		schemes:    make(map[string]*SchemeStats),
		procedures: make(map[string]int),
		daily:      make(map[string]*DailyStats),
		patients:   make(map[string]struct{}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.startedAt = c.now().UTC()
	return c
}

func (c *Collector) RecordBenefitCheck(scheme, _ string, available bool) {
	c.mu.Lock()
	c.benefitChecks++
	c.dayLocked().BenefitChecks++
	c.mu.Unlock()

	c.metrics.IncBenefitCheck(scheme, available)
}

func (c *Collector) RecordAuthorization(scheme, _, status string, _ float64) {
	c.mu.Lock()
	c.authorizations++
	if status == statusApproved {
		c.approvedAuthorizations++
	}
	c.dayLocked().Authorizations++
	c.mu.Unlock()

	c.metrics.IncAuthorization(scheme, status)
}

// RecordClaim counts the claim against its scheme, each claimed procedure,
// and the patient. An empty patientID is not counted as a patient.
func (c *Collector) RecordClaim(scheme string, amount float64, procedureCodes []string, status, patientID string) {
	c.mu.Lock()
	c.claims++
	c.claimedAmount += amount
	if status == statusApproved {
		c.approvedClaims++
	}
	stats, ok := c.schemes[scheme]
	if !ok {
		stats = &SchemeStats{}
		c.schemes[scheme] = stats
	}
	stats.TotalClaims++
	stats.TotalAmount += amount
	for _, code := range procedureCodes {
		c.procedures[code]++
	}
	if patientID != "" {
		c.patients[patientID] = struct{}{}
	}
	c.dayLocked().Claims++
	c.mu.Unlock()

	c.metrics.ObserveClaim(scheme, status, amount)
}

// SchemeStatistics returns stats for every scheme with claims, or for the one
// named scheme. An unknown name yields an empty map.
func (c *Collector) SchemeStatistics(scheme string) map[string]SchemeStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schemeStatsLocked(scheme)
}

// TopProcedures ranks procedure codes by count, ties broken by code. limit is
// clamped to [1, MaxTopProcedures].
func (c *Collector) TopProcedures(limit int) []ProcedureCount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topProceduresLocked(limit)
}

// DailyTrends returns the per-day counters for today and the previous days.
func (c *Collector) DailyTrends(days int) Trends {
	days = clamp(days, 1, MaxTrendDays)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Trends{PeriodDays: days, Trends: c.trendsLocked(days)}
}

func (c *Collector) ApprovalRates() ApprovalRates {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.approvalRatesLocked()
}

func (c *Collector) Dashboard() Dashboard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Dashboard{
		Overview: Overview{
			TotalClaims:         c.claims,
			TotalAuthorizations: c.authorizations,
			TotalBenefitChecks:  c.benefitChecks,
			ActiveSchemes:       len(c.schemes),
		},
		SchemeStatistics: c.schemeStatsLocked(""),
		TopProcedures:    c.topProceduresLocked(DefaultTopProcedures),
		ApprovalRates:    c.approvalRatesLocked(),
		RecentTrends:     c.trendsLocked(dashboardTrendDays),
	}
}

func (c *Collector) HealthMetrics() HealthMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, n := range c.procedures {
		total += n
	}
	var average float64
	if c.claims > 0 {
		average = c.claimedAmount / float64(c.claims)
	}
	return HealthMetrics{
		PopulationMetrics: PopulationMetrics{
			TotalPatientsServed:  len(c.patients),
			TotalProcedures:      total,
			UniqueProcedureTypes: len(c.procedures),
			AverageClaimAmount:   average,
		},
		ResourceUtilization: ResourceUtilization{
			TopProcedures:      c.topProceduresLocked(healthTopN),
			SchemeDistribution: c.schemeStatsLocked(""),
		},
		Service: ServiceInfo{
			StartedAt:     c.startedAt,
			UptimeSeconds: int64(c.now().Sub(c.startedAt).Seconds()),
		},
	}
}

func (c *Collector) schemeStatsLocked(scheme string) map[string]SchemeStats {
	out := make(map[string]SchemeStats)
	if scheme != "" {
		if stats, ok := c.schemes[scheme]; ok {
			out[scheme] = *stats
		}
		return out
	}
	for name, stats := range c.schemes {
		out[name] = *stats
	}
	return out
}

func (c *Collector) topProceduresLocked(limit int) []ProcedureCount {
	limit = clamp(limit, 1, MaxTopProcedures)
	ranked := make([]ProcedureCount, 0, len(c.procedures))
	for code, n := range c.procedures {
		ranked = append(ranked, ProcedureCount{ProcedureCode: code, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ProcedureCode < ranked[j].ProcedureCode
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (c *Collector) trendsLocked(days int) map[string]DailyStats {
	cutoff := c.now().UTC().AddDate(0, 0, -days).Format(dateLayout)
	out := make(map[string]DailyStats)
	for date, stats := range c.daily {
		if date >= cutoff {
			out[date] = *stats
		}
	}
	return out
}

func (c *Collector) approvalRatesLocked() ApprovalRates {
	return ApprovalRates{
		Claims:         rate(c.claims, c.approvedClaims),
		Authorizations: rate(c.authorizations, c.approvedAuthorizations),
	}
}

// dayLocked returns today's bucket, pruning buckets past retention when a new
// day starts.
func (c *Collector) dayLocked() *DailyStats {
	today := c.now().UTC()
	key := today.Format(dateLayout)
	stats, ok := c.daily[key]
	if ok {
		return stats
	}
	cutoff := today.AddDate(0, 0, -dailyRetention).Format(dateLayout)
	for date := range c.daily {
		if date < cutoff {
			delete(c.daily, date)
		}
	}
	stats = &DailyStats{}
	c.daily[key] = stats
	return stats
}

func rate(total, approved int) Rate {
	r := Rate{Total: total, Approved: approved}
	if total > 0 {
		r.ApprovalRate = float64(approved) / float64(total) * 100
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

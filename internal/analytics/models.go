package analytics

import "time"

type SchemeStats struct {
	TotalClaims int     `json:"total_claims"`
	TotalAmount float64 `json:"total_amount"`
}

type ProcedureCount struct {
	ProcedureCode string `json:"procedure_code"`
	Count         int    `json:"count"`
}

type DailyStats struct {
	Claims         int `json:"claims"`
	Authorizations int `json:"authorizations"`
	BenefitChecks  int `json:"benefit_checks"`
}

type Trends struct {
	PeriodDays int                   `json:"period_days"`
	Trends     map[string]DailyStats `json:"trends"`
}

type Rate struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	ApprovalRate float64 `json:"approval_rate"`
}

type ApprovalRates struct {
	Claims         Rate `json:"claims"`
	Authorizations Rate `json:"authorizations"`
}

type Overview struct {
	TotalClaims         int `json:"total_claims"`
	TotalAuthorizations int `json:"total_authorizations"`
	TotalBenefitChecks  int `json:"total_benefit_checks"`
	ActiveSchemes       int `json:"active_schemes"`
}

type Dashboard struct {
	Overview         Overview               `json:"overview"`
	SchemeStatistics map[string]SchemeStats `json:"scheme_statistics"`
	TopProcedures    []ProcedureCount       `json:"top_procedures"`
	ApprovalRates    ApprovalRates          `json:"approval_rates"`
	RecentTrends     map[string]DailyStats  `json:"recent_trends"`
}

type PopulationMetrics struct {
	TotalPatientsServed  int     `json:"total_patients_served"`
	TotalProcedures      int     `json:"total_procedures"`
	UniqueProcedureTypes int     `json:"unique_procedure_types"`
	AverageClaimAmount   float64 `json:"average_claim_amount"`
}

type ResourceUtilization struct {
	TopProcedures      []ProcedureCount       `json:"top_procedures"`
	SchemeDistribution map[string]SchemeStats `json:"scheme_distribution"`
}

type ServiceInfo struct {
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

type HealthMetrics struct {
	PopulationMetrics   PopulationMetrics   `json:"population_metrics"`
	ResourceUtilization ResourceUtilization `json:"resource_utilization"`
	Service             ServiceInfo         `json:"service"`
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the closing engine
type Metrics struct {
	CostEstimates   *prometheus.CounterVec
	ClosingPlans    *prometheus.CounterVec
	CUITChecks      *prometheus.CounterVec
	LeadTimeLookups *prometheus.CounterVec
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CostEstimates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notaryflow_cost_estimates_total",
			Help: "Total number of cost estimates by currency",
		}, []string{"currency"}),
		ClosingPlans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notaryflow_closing_plans_total",
			Help: "Total number of closing plans by jurisdiction and feasibility",
		}, []string{"jurisdiction", "feasibility"}),
		CUITChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notaryflow_cuit_checks_total",
			Help: "Total number of CUIT/CUIL validations by outcome",
		}, []string{"valid"}),
		LeadTimeLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notaryflow_lead_time_lookups_total",
			Help: "Total number of lead-time table lookups by source (cache, repository, default)",
		}, []string{"source"}),
	}
}

// IncrementCostEstimates counts a cost estimate
func (m *Metrics) IncrementCostEstimates(currency string) {
	m.CostEstimates.WithLabelValues(currency).Inc()
}

// IncrementClosingPlans counts a closing plan
func (m *Metrics) IncrementClosingPlans(jurisdiction, feasibility string) {
	m.ClosingPlans.WithLabelValues(jurisdiction, feasibility).Inc()
}

// IncrementCUITChecks counts a CUIT validation
func (m *Metrics) IncrementCUITChecks(valid bool) {
	label := "false"
	if valid {
		label = "true"
	}
	m.CUITChecks.WithLabelValues(label).Inc()
}

// IncrementLeadTimeLookups counts where a lead-time table came from
func (m *Metrics) IncrementLeadTimeLookups(source string) {
	m.LeadTimeLookups.WithLabelValues(source).Inc()
}

package daemon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theirongolddev/tripbudget/internal/model"
)

// metrics lives on its own registry so several services can coexist in
// one process (tests).
type metrics struct {
	registry *prometheus.Registry

	totalCost   prometheus.Gauge
	revenue     prometheus.Gauge
	grossProfit prometheus.Gauge
	netProfit   prometheus.Gauge
	categories  *prometheus.GaugeVec

	recomputes      prometheus.Counter
	pollErrors      prometheus.Counter
	events          *prometheus.CounterVec
	computeDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripbudget_total_cost",
			Help: "Total trip cost in base currency",
		}),
		revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripbudget_revenue",
			Help: "Gross revenue from students in base currency",
		}),
		grossProfit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripbudget_gross_profit",
			Help: "After-tax revenue minus total cost",
		}),
		netProfit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripbudget_net_profit",
			Help: "Gross profit minus stakeholder taxes",
		}),
		categories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tripbudget_category_cost",
			Help: "Cost per category split by cohort",
		}, []string{"category", "cohort"}),
		recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripbudget_recomputes_total",
			Help: "Number of budget recomputations",
		}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripbudget_poll_errors_total",
			Help: "Number of failed trip file polls",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripbudget_events_total",
			Help: "Events published by type",
		}, []string{"type"}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripbudget_compute_duration_seconds",
			Help:    "Time spent in one budget computation",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}

	m.registry.MustRegister(
		m.totalCost, m.revenue, m.grossProfit, m.netProfit, m.categories,
		m.recomputes, m.pollErrors, m.events, m.computeDuration,
	)
	return m
}

func (m *metrics) observe(res model.BudgetResult, took time.Duration) {
	m.totalCost.Set(res.TotalCost)
	m.revenue.Set(res.Revenue.Total)
	m.grossProfit.Set(res.GrossProfit)
	m.netProfit.Set(res.NetProfit)
	for _, line := range res.Costs.Lines() {
		m.categories.WithLabelValues(line.Category, "students").Set(line.StudentsCost)
		m.categories.WithLabelValues(line.Category, "mentors").Set(line.MentorsCost)
	}
	m.recomputes.Inc()
	m.computeDuration.Observe(took.Seconds())
}

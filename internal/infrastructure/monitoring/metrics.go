package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	LoanApplicationsTotal prometheus.Counter
	LoanApprovalsTotal    prometheus.Counter
	LoansPaidOffTotal     prometheus.Counter
	RepaymentsTotal       *prometheus.CounterVec
}

var Business = BusinessMetrics{
	LoanApplicationsTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_engine_applications_total",
			Help: "Total number of loan applications accepted.",
		},
	),
	LoanApprovalsTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_engine_approvals_total",
			Help: "Total number of loans approved.",
		},
	),
	LoansPaidOffTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_engine_paid_off_total",
			Help: "Total number of loans fully paid off.",
		},
	),
	RepaymentsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_engine_repayments_total",
			Help: "Total number of repayment attempts by outcome.",
		},
		[]string{"status"},
	),
}

func RecordApplication() {
	Business.LoanApplicationsTotal.Inc()
}

func RecordApproval() {
	Business.LoanApprovalsTotal.Inc()
}

func RecordPaidOff() {
	Business.LoansPaidOffTotal.Inc()
}

func RecordRepayment(status string) {
	Business.RepaymentsTotal.WithLabelValues(status).Inc()
}

package database

import "github.com/prometheus/client_golang/prometheus"

var (
	txRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_tx_retries_total",
		Help: "Transactions replayed after a lost race, by operation",
	}, []string{"op"})

	txConflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_tx_conflicts_total",
		Help: "Transactions that exhausted their retry budget",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(txRetries, txConflicts)
}

package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expensesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharesplit",
			Name:      "expenses_created_total",
			Help:      "Total number of expenses created, by split method.",
		},
		[]string{"split_method"},
	)

	validationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharesplit",
			Name:      "expense_validation_failures_total",
			Help:      "Total number of rejected expense requests, by validation error kind.",
		},
		[]string{"kind"},
	)
)

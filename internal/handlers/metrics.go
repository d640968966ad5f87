package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authSuccesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_successes",
		Help: "Count of successful authentications",
	}, []string{"method"})

	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures",
		Help: "Count of failed authentications",
	}, []string{"method"})
)

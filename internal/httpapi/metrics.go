package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recall_attempts_started_total",
		Help: "Attempts created, by mode.",
	}, []string{"mode"})

	turnsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recall_turns_total",
		Help: "Turns recorded, by mode.",
	}, []string{"mode"})

	attemptsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recall_attempts_finished_total",
		Help: "Attempts that reached a terminal status.",
	}, []string{"status"})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recall_step_duration_seconds",
		Help:    "End-to-end duration of one orchestrator step, collaborator call included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

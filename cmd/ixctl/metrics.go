package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// termsCompactedTotal counts terms compressed during ixctl build, so a
// real deployment can scrape build progress instead of tailing logs.
var termsCompactedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ixctl",
	Subsystem: "build",
	Name:      "terms_compacted_total",
	Help:      "Total terms compressed into the output index across all build invocations",
})

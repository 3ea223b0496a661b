package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestedTotal counts stored measurement rows by ingest source.
	IngestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenhouse_measurements_ingested_total",
		Help: "Measurement rows stored, by source.",
	}, []string{"source"})

	// IngestRejected counts submissions that never reached the store.
	IngestRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenhouse_measurements_rejected_total",
		Help: "Measurement submissions rejected before storage, by reason.",
	}, []string{"reason"})
)

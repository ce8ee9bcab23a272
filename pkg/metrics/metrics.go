/*
Copyright 2025 Planfeed Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics provides Prometheus metrics for the planfeed pipeline.
// It exposes pipeline health, catalog shape, quantization results, and
// solver outcomes to enable operational visibility and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the planfeed pipeline.
type Metrics struct {
	// PipelineRunning indicates whether the pipeline process is up.
	// This is a simple gauge set to 1 on startup. If the metric disappears
	// from the metrics endpoint, the process has crashed.
	PipelineRunning prometheus.Gauge

	// PriceRecords is the number of raw offer rows loaded from the
	// price-list dump.
	PriceRecords prometheus.Gauge

	// CatalogEntries counts generated catalog entries per region and
	// purchase mode ("ondemand", "reserved", "private").
	// Labels: region, purchase_mode
	CatalogEntries *prometheus.GaugeVec

	// CapacityConstraints counts the distinct capacity constraints created
	// for each region (one regional plus one per availability zone).
	// Labels: region
	CapacityConstraints *prometheus.GaugeVec

	// QuantumSize records the demand quantum derived for each application.
	// Absent when quantization is disabled.
	// Labels: application
	QuantumSize *prometheus.GaugeVec

	// SolverStatus indicates the terminal state of the last solve attempt.
	// Exactly one status label carries 1; the rest carry 0.
	// Labels: status
	SolverStatus *prometheus.GaugeVec

	// SolverOptimalCost is the total cost of the last optimal solution.
	// Only meaningful when the "optimal" SolverStatus series is 1.
	SolverOptimalCost prometheus.Gauge

	// SolverCreationSeconds is how long the solver spent building its
	// internal model on the last run.
	SolverCreationSeconds prometheus.Gauge

	// SolverSolvingSeconds is how long the solver search ran on the last
	// run.
	SolverSolvingSeconds prometheus.Gauge

	// StageDuration measures the wall time of each pipeline stage.
	// Labels: stage ("ingest", "catalog", "performance", "quantize",
	// "assemble")
	StageDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics with the provided
// registry, which exposes them via the /metrics endpoint.
//
// Example usage:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewMetrics(reg)
//	m.PipelineRunning.Set(1)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planfeed_pipeline_running",
			Help: "Indicates whether the planfeed pipeline is running (1 = running)",
		}),

		PriceRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planfeed_price_records",
			Help: "Number of raw offer rows loaded from the price-list dump",
		}),

		CatalogEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planfeed_catalog_entries",
			Help: "Number of generated catalog entries by region and purchase mode",
		}, []string{LabelRegion, LabelPurchaseMode}),

		CapacityConstraints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planfeed_capacity_constraints",
			Help: "Number of distinct capacity constraints created per region",
		}, []string{LabelRegion}),

		QuantumSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planfeed_quantum_size",
			Help: "Demand quantum derived per application (absent when quantization is disabled)",
		}, []string{LabelApplication}),

		SolverStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planfeed_solver_status",
			Help: "Terminal state of the last solve attempt (1 on the active status label)",
		}, []string{LabelStatus}),

		SolverOptimalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planfeed_solver_optimal_cost",
			Help: "Total cost of the last optimal solution (USD)",
		}),

		SolverCreationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planfeed_solver_creation_seconds",
			Help: "Time the solver spent building its internal model on the last run",
		}),

		SolverSolvingSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planfeed_solver_solving_seconds",
			Help: "Time the solver search ran on the last run",
		}),

		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "planfeed_stage_duration_seconds",
			Help: "Wall time of each pipeline stage",
			// Buckets cover 10ms to 5 minutes; ingest of a full bulk dump
			// dominates the upper end.
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{LabelStage}),
	}

	reg.MustRegister(
		m.PipelineRunning,
		m.PriceRecords,
		m.CatalogEntries,
		m.CapacityConstraints,
		m.QuantumSize,
		m.SolverStatus,
		m.SolverOptimalCost,
		m.SolverCreationSeconds,
		m.SolverSolvingSeconds,
		m.StageDuration,
	)
	return m
}

// SetSolverStatus sets the given status series to 1 and every other known
// status series to 0, so dashboards always see a complete status vector.
func (m *Metrics) SetSolverStatus(status string) {
	for _, s := range []string{"optimal", "infeasible", "aborted", "unknown"} {
		v := 0.0
		if s == status {
			v = 1.0
		}
		m.SolverStatus.WithLabelValues(s).Set(v)
	}
}

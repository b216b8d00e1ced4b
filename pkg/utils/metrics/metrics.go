package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts match and award calculations.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	MatchRequests     prometheus.Counter
	CandidatesScored  prometheus.Counter
	WorkersExcluded   *prometheus.CounterVec
	AwardCalculations *prometheus.CounterVec
	BreakViolations   *prometheus.CounterVec
	AwardShiftCost    prometheus.Histogram
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		MatchRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rostering_match_requests_total",
				Help: "Total number of shifts ranked",
			},
		),

		CandidatesScored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rostering_candidates_scored_total",
				Help: "Total number of workers scored against a shift",
			},
		),

		WorkersExcluded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rostering_workers_excluded_total",
				Help: "Total number of workers excluded from ranking",
			},
			[]string{"reason"},
		),

		AwardCalculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rostering_award_calculations_total",
				Help: "Total number of shifts costed under the award",
			},
			[]string{"shift_type"},
		),

		BreakViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rostering_break_violations_total",
				Help: "Total number of minimum break violations detected",
			},
			[]string{"engine"},
		),

		AwardShiftCost: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rostering_award_shift_cost",
				Help:    "Cost of shifts costed under the award",
				Buckets: []float64{50, 100, 200, 300, 500, 750, 1000, 1500},
			},
		),
	}
}

// Registry returns the registry the recorder's collectors are registered with
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordMatch counts a ranked shift and the number of workers scored for it
func (r *Recorder) RecordMatch(candidates int) {
	if r == nil {
		return
	}
	r.MatchRequests.Inc()
	r.CandidatesScored.Add(float64(candidates))
}

// RecordExclusion counts a worker excluded for the given reason
func (r *Recorder) RecordExclusion(reason string) {
	if r == nil {
		return
	}
	r.WorkersExcluded.WithLabelValues(reason).Inc()
}

// RecordAward counts a costed shift
func (r *Recorder) RecordAward(shiftType string, cost float64) {
	if r == nil {
		return
	}
	r.AwardCalculations.WithLabelValues(shiftType).Inc()
	r.AwardShiftCost.Observe(cost)
}

// RecordBreakViolation counts a minimum break violation found by an engine
func (r *Recorder) RecordBreakViolation(engine string) {
	if r == nil {
		return
	}
	r.BreakViolations.WithLabelValues(engine).Inc()
}

// WriteToTextfile writes the registry in the text exposition format for the node exporter's textfile collector
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

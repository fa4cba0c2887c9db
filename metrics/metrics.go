// Package metrics exposes Prometheus counters describing coordinator activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes.
const (
	Accepted            = "accepted"
	RejectedNoAutoplay  = "no_autoplay"
	RejectedUnsupported = "unsupported_platform"
)

// Metrics holds all Prometheus metrics for one coordinator.
type Metrics struct {
	reg prometheus.Registerer

	Registrations     *prometheus.CounterVec
	Actions           *prometheus.CounterVec
	VisibilityChanges *prometheus.CounterVec
	Evaluations       prometheus.Counter
	Interactions      prometheus.Counter
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vidman_registrations_total",
			Help: "Players offered to the coordinator, by admission outcome",
		}, []string{"result"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vidman_player_actions_total",
			Help: "Capability calls issued to players, by action",
		}, []string{"action"}),
		VisibilityChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vidman_visibility_changes_total",
			Help: "Visibility flips observed after measurement, by new state",
		}, []string{"state"}),
		Evaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "vidman_autoplay_evaluations_total",
			Help: "Times the autoplay transition of a loaded player was evaluated",
		}),
		Interactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "vidman_user_interactions_total",
			Help: "Players that switched to user-controlled playback",
		}),
	}
}

// TrackDetections exports the probe's detection count as a counter.
func (m *Metrics) TrackDetections(detections func() int) {
	promauto.With(m.reg).NewCounterFunc(prometheus.CounterOpts{
		Name: "vidman_autoplay_detections_total",
		Help: "Muted autoplay detections actually run",
	}, func() float64 {
		return float64(detections())
	})
}

// Registered counts one registration outcome.
func (m *Metrics) Registered(result string) {
	m.Registrations.WithLabelValues(result).Inc()
}

// Acted counts one capability call.
func (m *Metrics) Acted(action string) {
	m.Actions.WithLabelValues(action).Inc()
}

// VisibilityChanged counts one visibility flip.
func (m *Metrics) VisibilityChanged(visible bool) {
	state := "hidden"
	if visible {
		state = "visible"
	}
	m.VisibilityChanges.WithLabelValues(state).Inc()
}

// Evaluated counts one autoplay transition evaluation.
func (m *Metrics) Evaluated() {
	m.Evaluations.Inc()
}

// Interacted counts one player switching to user control.
func (m *Metrics) Interacted() {
	m.Interactions.Inc()
}

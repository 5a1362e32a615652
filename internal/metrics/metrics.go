// Package metrics exposes Prometheus counters for the board consistency layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cascade step labels.
const (
	StepComments      = "comments"
	StepNotifications = "notifications"
)

// Recorder is what the services report cascade and delivery outcomes to.
type Recorder interface {
	RecordCascadeDeleted(step string, count int64)
	RecordCascadeFailure(step string)
	RecordNotificationDelivered()
	RecordNotificationFailed()
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	cascadeDeleted  *prometheus.CounterVec
	cascadeFailures *prometheus.CounterVec
	notifyDelivered prometheus.Counter
	notifyFailed    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cascadeDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kanban_cascade_deleted_total",
			Help: "Rows removed by cascade cleanup, by step.",
		}, []string{"step"}),
		cascadeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kanban_cascade_failures_total",
			Help: "Cascade cleanup steps that failed and were skipped.",
		}, []string{"step"}),
		notifyDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanban_notifications_delivered_total",
			Help: "Notifications persisted.",
		}),
		notifyFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kanban_notifications_failed_total",
			Help: "Notifications that could not be persisted.",
		}),
	}

	reg.MustRegister(
		c.cascadeDeleted,
		c.cascadeFailures,
		c.notifyDelivered,
		c.notifyFailed,
	)

	return c
}

func (c *Collector) RecordCascadeDeleted(step string, count int64) {
	c.cascadeDeleted.WithLabelValues(step).Add(float64(count))
}

func (c *Collector) RecordCascadeFailure(step string) {
	c.cascadeFailures.WithLabelValues(step).Inc()
}

func (c *Collector) RecordNotificationDelivered() {
	c.notifyDelivered.Inc()
}

func (c *Collector) RecordNotificationFailed() {
	c.notifyFailed.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordCascadeDeleted(string, int64) {}
func (Nop) RecordCascadeFailure(string)        {}
func (Nop) RecordNotificationDelivered()       {}
func (Nop) RecordNotificationFailed()          {}

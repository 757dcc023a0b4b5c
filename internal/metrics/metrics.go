// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeadConversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "lead_conversions_total",
		Help:      "Lead to deal conversions by outcome.",
	}, []string{"outcome"})

	CustomFieldCleanups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "custom_field_cleanups_total",
		Help:      "Custom field definitions deleted, by module.",
	}, []string{"module"})

	CustomFieldSlotsCleared = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "custom_field_slots_cleared_total",
		Help:      "Record slots nulled by custom field cleanup, by module.",
	}, []string{"module"})

	RemindersScheduled = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crm",
		Name:      "reminders_scheduled",
		Help:      "Reminder entries currently registered with the scheduler.",
	})

	RemindersFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "reminders_fired_total",
		Help:      "Reminder entries fired, by kind.",
	}, []string{"kind"})

	Backups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "backups_total",
		Help:      "Backup operations by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// Outcome labels a result for the counters above.
func Outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

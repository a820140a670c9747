package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_created_total",
		Help: "Appointments successfully created.",
	})

	SlotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_conflicts_total",
		Help: "Creation attempts rejected by the slot exclusivity check.",
	})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_reminders_sent_total",
		Help: "Reminder messages delivered by the sweeper.",
	})

	AppointmentsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_expired_total",
		Help: "Appointments auto-cancelled past the grace window.",
	})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_notification_failures_total",
		Help: "Notification deliveries that failed, by channel.",
	}, []string{"channel"})
)

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamdb_signups_total",
			Help: "Successful signups, by whether a new user was created",
		},
		[]string{"created"},
	)

	tokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamdb_tokens_issued_total",
			Help: "Access tokens issued in exchange for a confirmation code",
		},
	)

	confirmationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamdb_confirmation_failures_total",
			Help: "Token exchanges rejected because of a wrong or stale confirmation code",
		},
	)

	reviewConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamdb_review_conflicts_total",
			Help: "Review creations rejected by the one-review-per-title constraint",
		},
	)

	emailDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamdb_email_deliveries_total",
			Help: "Confirmation emails by outcome (sent, failed, dropped)",
		},
		[]string{"result"},
	)
)

func Signup(created bool) {
	signupsTotal.WithLabelValues(strconv.FormatBool(created)).Inc()
}

func TokenIssued() {
	tokensIssuedTotal.Inc()
}

func ConfirmationFailed() {
	confirmationFailuresTotal.Inc()
}

func ReviewConflict() {
	reviewConflictsTotal.Inc()
}

const (
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliveryDropped = "dropped"
)

func EmailDelivery(result string) {
	emailDeliveriesTotal.WithLabelValues(result).Inc()
}

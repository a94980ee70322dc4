package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gb_market"

//nolint:gochecknoglobals
var (
	RecordsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_generated_total",
		Help:      "Synthetic records produced by widget generators.",
	}, []string{"kind"})

	DealsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flash_deals_expired_total",
		Help:      "Flash deals removed after their countdown reached zero.",
	})

	WidgetsMounted = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "widgets_mounted",
		Help:      "Currently mounted widget instances.",
	}, []string{"kind"})

	SchedulerDispatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_dispatches_total",
		Help:      "Jobs dispatched by the shared scheduler.",
	})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification deliveries per sink and result.",
	}, []string{"sink", "result"})
)

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "firewatch_"

// Reading result labels.
const (
	ReadingAccepted = "accepted"
	ReadingFire     = "fire"
	ReadingRejected = "rejected"
)

// Alert dispatch result labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	readingsTotal *prometheus.CounterVec
	alertsTotal   *prometheus.CounterVec
)

// Init registers the service metrics. fireRooms feeds a gauge with the number
// of rooms currently in fire alert; pass nil to skip it.
func Init(fireRooms func() float64) {
	registerOnce.Do(func() {
		readingsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_total",
				Help: "Ingested sensor readings by result",
			},
			[]string{"result"},
		)
		alertsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_total",
				Help: "Outbound alert dispatches by kind and result",
			},
			[]string{"kind", "result"},
		)
		prometheus.MustRegister(readingsTotal, alertsTotal)

		if fireRooms != nil {
			prometheus.MustRegister(prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: metricPrefix + "fire_rooms",
					Help: "Rooms currently in ALERT_FIRE",
				},
				fireRooms,
			))
		}
	})
}

// ReadingObserved counts one ingested reading. Safe to call before Init.
func ReadingObserved(result string) {
	if readingsTotal != nil {
		readingsTotal.WithLabelValues(result).Inc()
	}
}

// AlertDispatched counts one outbound alert attempt. Safe to call before Init.
func AlertDispatched(kind, result string) {
	if alertsTotal != nil {
		alertsTotal.WithLabelValues(kind, result).Inc()
	}
}

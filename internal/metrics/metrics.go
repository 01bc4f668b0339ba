// Package metrics exposes the Prometheus collectors for the order and
// notification pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resto_orders_created_total",
		Help: "Orders successfully created (direct or checkout).",
	})

	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_notifications_delivered_total",
		Help: "Notifications delivered to at least one live channel.",
	}, []string{"type"})

	NotificationsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resto_notifications_dropped_total",
		Help: "Notifications that found no live channel or failed to enqueue.",
	}, []string{"type"})

	ClientConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resto_ws_client_connections",
		Help: "Live targeted WebSocket connections.",
	})

	BroadcastConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resto_ws_broadcast_connections",
		Help: "Live dashboard broadcast WebSocket connections.",
	})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

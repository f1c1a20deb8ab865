// Package metrics expone contadores Prometheus del flujo de movimientos y de HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	appmovement "github.com/jhoicas/Cilindros-api/internal/application/movement"
)

var _ appmovement.Metrics = (*Collectors)(nil)

// Collectors agrupa los collectors registrados.
type Collectors struct {
	movementsCreated *prometheus.CounterVec
	createDuration   prometheus.Histogram
	sequenceIssued   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New crea y registra los collectors en reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		movementsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cilindros",
			Name:      "movimientos_total",
			Help:      "Intentos de creación de movimientos por resultado.",
		}, []string{"outcome"}),
		createDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cilindros",
			Name:      "movimiento_create_seconds",
			Help:      "Duración de CreateMovimiento.",
			Buckets:   prometheus.DefBuckets,
		}),
		sequenceIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cilindros",
			Name:      "consecutivos_emitidos_total",
			Help:      "Números de documento consumidos.",
		}, []string{"source"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cilindros",
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cilindros",
			Name:      "http_request_seconds",
			Help:      "Latencia HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(c.movementsCreated, c.createDuration, c.sequenceIssued, c.httpRequests, c.httpDuration)
	return c
}

func (c *Collectors) ObserveCreate(outcome string, elapsed time.Duration) {
	c.movementsCreated.WithLabelValues(outcome).Inc()
	c.createDuration.Observe(elapsed.Seconds())
}

func (c *Collectors) SequenceIssued(source string) {
	c.sequenceIssued.WithLabelValues(source).Inc()
}

// ObserveHTTP registra una petición ya respondida.
func (c *Collectors) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

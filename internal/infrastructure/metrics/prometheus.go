package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus contadores de negocio sobre un registry propio (sin estado global).
type Prometheus struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	dangling    *prometheus.CounterVec
	migrated    *prometheus.CounterVec
	imported    *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New registra los colectores de la aplicación y los del runtime de Go.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roteiro_navigation_transitions_total",
			Help: "Transiciones de navegación por tipo y resultado",
		}, []string{"transition", "outcome"}),
		dangling: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roteiro_dangling_references_total",
			Help: "Botones que apuntaron a un paso inexistente",
		}, []string{"product_id"}),
		migrated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roteiro_migrated_records_total",
			Help: "Registros copiados por la migración",
		}, []string{"entity", "outcome"}),
		imported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roteiro_step_imports_total",
			Help: "Pasos importados desde archivos de roteiro",
		}, []string{"file"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roteiro_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		p.transitions, p.dangling, p.migrated, p.imported, p.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry expone el registry (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) NavigationTransition(transition, outcome string) {
	p.transitions.WithLabelValues(transition, outcome).Inc()
}

func (p *Prometheus) DanglingReference(productID string) {
	p.dangling.WithLabelValues(productID).Inc()
}

func (p *Prometheus) MigratedRecords(entity, outcome string, n int) {
	if n <= 0 {
		return
	}
	p.migrated.WithLabelValues(entity, outcome).Add(float64(n))
}

func (p *Prometheus) StepsImported(file string, n int) {
	p.imported.WithLabelValues(file).Add(float64(n))
}

// ObserveRequest registra la latencia de una petición ya respondida.
func (p *Prometheus) ObserveRequest(method, route, status string, seconds float64) {
	p.requests.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler endpoint /metrics para Fiber.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}

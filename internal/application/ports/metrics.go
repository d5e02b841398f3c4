package ports

// Metrics contadores de negocio. La implementación Prometheus vive en infrastructure/metrics;
// NopMetrics sirve para tests y herramientas.
type Metrics interface {
	NavigationTransition(transition, outcome string)
	DanglingReference(productID string)
	MigratedRecords(entity, outcome string, n int)
	StepsImported(file string, n int)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) NavigationTransition(string, string) {}
func (NopMetrics) DanglingReference(string)            {}
func (NopMetrics) MigratedRecords(string, string, int) {}
func (NopMetrics) StepsImported(string, int)           {}

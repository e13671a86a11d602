package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores da pipeline de importação, expostos em /metrics
var (
	ImportsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debriefing_imports_started_total",
		Help: "Sessões de importação criadas",
	})

	ImportsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debriefing_imports_confirmed_total",
		Help: "Importações confirmadas e persistidas",
	})

	ImportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "debriefing_imports_failed_total",
		Help: "Confirmações de importação que falharam na persistência",
	})

	RowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "debriefing_rows_parsed_total",
		Help: "Linhas de CSV interpretadas, por tipo de arquivo",
	}, []string{"dataset"})
)

// Handler expõe o endpoint Prometheus dentro do Fiber
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

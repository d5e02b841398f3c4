package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// requestObserver recibe la latencia de cada petición (lo implementa metrics.Prometheus).
type requestObserver interface {
	ObserveRequest(method, route, status string, seconds float64)
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
// observer es opcional.
func RequestLogger(log *logger.Logger, observer requestObserver) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("company_id", GetCompanyID(c)).
			Msg("request")

		if observer != nil {
			observer.ObserveRequest(c.Method(), c.Route().Path, strconv.Itoa(status), latency.Seconds())
		}
		return nil
	}
}

package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/metrics"
)

// windowParams are the only query parameters the exporter reads.
var windowParams = []string{"from", "to"}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, exporter *geo.Exporter, m *metrics.Metrics) {
	// Every method is routed so the exporter can answer "invalid method"
	// in its own response shape.
	app.All("/geo", func(c *fiber.Ctx) error {
		req := geo.Request{
			Method: c.Method(),
			Params: parseWindowQuery(c),
		}

		resp := exporter.Handle(c.UserContext(), req)
		return writeResponse(c, resp)
	})

	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
}

// parseWindowQuery returns nil when the request has no query string, so an
// absent query and an empty one are told apart the same way the exporter
// expects.
func parseWindowQuery(c *fiber.Ctx) map[string]string {
	args := c.Context().QueryArgs()
	if args.Len() == 0 {
		return nil
	}

	params := make(map[string]string, len(windowParams))
	for _, name := range windowParams {
		if args.Has(name) {
			params[name] = c.Query(name)
		}
	}
	return params
}

func writeResponse(c *fiber.Ctx, resp geo.Response) error {
	for k, v := range resp.Headers {
		c.Set(k, v)
	}

	status, err := strconv.Atoi(resp.StatusCode)
	if err != nil {
		status = fiber.StatusOK
	}
	return c.Status(status).SendString(resp.Body)
}

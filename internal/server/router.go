package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PageHandler describes the component that turns a routed request into a
// page response or redirect. It allows injecting fake handlers during tests.
type PageHandler interface {
	Handle(fiber.Ctx, *SiteRoute) error
}

// PageHandlerFunc adapts a function to the PageHandler interface.
type PageHandlerFunc func(fiber.Ctx, *SiteRoute) error

// Handle makes PageHandlerFunc satisfy PageHandler.
func (f PageHandlerFunc) Handle(c fiber.Ctx, route *SiteRoute) error {
	return f(c, route)
}

// AppOptions controls how the Fiber application should behave on a specific port.
type AppOptions struct {
	Logger       *logrus.Logger
	Registry     *SiteRegistry
	Pages        PageHandler
	ListenPort   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	contextKeyRoute     = "_pageredirect_site"
	contextKeyRequestID = "_pageredirect_request_id"
)

// NewApp builds a Fiber application with Host based site routing and
// structured error handling.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Registry == nil {
		return nil, errors.New("site registry is required")
	}
	if opts.Pages == nil {
		return nil, errors.New("page handler is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiberConfig(opts))

	app.Use(recover.New())
	app.Use(requestContextMiddleware(opts))

	app.All("/*", func(c fiber.Ctx) error {
		if isDiagnosticsPath(string(c.Request().URI().Path())) {
			return c.Next()
		}
		route, _ := SiteFromContext(c)
		if route == nil {
			return renderSiteUnmapped(c, opts.Logger, "", opts.ListenPort)
		}
		return opts.Pages.Handle(c, route)
	})

	return app, nil
}

// requestContextMiddleware 负责生成请求 ID，并基于 Host/Host:port 查找站点。
func requestContextMiddleware(opts AppOptions) fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)

		if isDiagnosticsPath(string(c.Request().URI().Path())) {
			return c.Next()
		}

		rawHost := strings.TrimSpace(getHostHeader(c))
		route, ok := opts.Registry.Lookup(rawHost)
		if !ok {
			return renderSiteUnmapped(c, opts.Logger, rawHost, opts.ListenPort)
		}

		c.Locals(contextKeyRoute, route)
		return c.Next()
	}
}

func renderSiteUnmapped(c fiber.Ctx, logger *logrus.Logger, host string, port int) error {
	logger.WithFields(logrus.Fields{
		"action":     "site_lookup",
		"host":       host,
		"port":       port,
		"request_id": RequestID(c),
	}).Warn("site unmapped")

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "site_unmapped",
	})
}

func getHostHeader(c fiber.Ctx) string {
	if raw := c.Request().Header.Peek(fiber.HeaderHost); len(raw) > 0 {
		return string(raw)
	}
	return c.Hostname()
}

// SiteFromContext returns the site resolved by the router middleware.
func SiteFromContext(c fiber.Ctx) (*SiteRoute, bool) {
	if value := c.Locals(contextKeyRoute); value != nil {
		if route, ok := value.(*SiteRoute); ok {
			return route, true
		}
	}
	return nil, false
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}

func isDiagnosticsPath(path string) bool {
	return strings.HasPrefix(path, "/-/")
}

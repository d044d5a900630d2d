package server

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

func TestRouterRoutesRequestWhenHostMatches(t *testing.T) {
	app := newTestApp(t, 5000)

	req := httptest.NewRequest("GET", "http://blog.local/authors", nil)
	req.Host = "blog.local"
	req.Header.Set("Host", "blog.local")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 204 status, got %d (body=%s)", resp.StatusCode, string(body))
	}

	if app.pages.siteName != "blog-local" {
		t.Fatalf("expected blog-local route, got %s", app.pages.siteName)
	}
	if app.pages.requestID == "" || resp.Header.Get("X-Request-ID") != app.pages.requestID {
		t.Fatalf("expected X-Request-ID header to match context id")
	}
}

func TestRouterReturns404WhenHostUnknown(t *testing.T) {
	app := newTestApp(t, 5000)

	req := httptest.NewRequest("GET", "http://unknown.local/", nil)
	req.Host = "unknown.local"
	req.Header.Set("Host", "unknown.local")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 status, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`"site_unmapped"`)) {
		t.Fatalf("expected site_unmapped error, got %s", string(body))
	}
	if app.pages.siteName != "" {
		t.Fatalf("page handler should not run for unmapped host")
	}
}

func TestRouterSkipsSiteLookupForDiagnostics(t *testing.T) {
	app := newTestApp(t, 5000)
	app.Get("/-/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "http://anything.local/-/ping", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "pong" {
		t.Fatalf("diagnostics route should bypass host lookup, got %d %s", resp.StatusCode, body)
	}
}

func TestRouterRecoversFromPanics(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	registry, err := NewSiteRegistry(testSitesConfig())
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	app, err := NewApp(AppOptions{
		Logger:     logger,
		Registry:   registry,
		ListenPort: 5000,
		Pages: PageHandlerFunc(func(fiber.Ctx, *SiteRoute) error {
			panic("boom")
		}),
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	req := httptest.NewRequest("GET", "http://website.local/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", resp.StatusCode)
	}
}

func TestNewAppValidatesOptions(t *testing.T) {
	logger := logrus.New()
	registry, _ := NewSiteRegistry(testSitesConfig())
	pages := PageHandlerFunc(func(c fiber.Ctx, _ *SiteRoute) error { return nil })

	cases := []AppOptions{
		{Registry: registry, Pages: pages, ListenPort: 1},
		{Logger: logger, Pages: pages, ListenPort: 1},
		{Logger: logger, Registry: registry, ListenPort: 1},
		{Logger: logger, Registry: registry, Pages: pages},
	}
	for i, opts := range cases {
		if _, err := NewApp(opts); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

type testApp struct {
	*fiber.App
	pages *pageRecorder
}

func newTestApp(t *testing.T, port int) *testApp {
	t.Helper()

	cfg := testSitesConfig()
	cfg.Global.ListenPort = port

	registry, err := NewSiteRegistry(cfg)
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	recorder := &pageRecorder{}
	app, err := NewApp(AppOptions{
		Logger:     logger,
		Registry:   registry,
		Pages:      recorder,
		ListenPort: port,
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	return &testApp{App: app, pages: recorder}
}

type pageRecorder struct {
	siteName  string
	requestID string
}

func (p *pageRecorder) Handle(c fiber.Ctx, route *SiteRoute) error {
	p.siteName = route.Name()
	p.requestID = RequestID(c)
	return c.SendStatus(fiber.StatusNoContent)
}

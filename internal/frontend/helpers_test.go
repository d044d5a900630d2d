package frontend

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/config"
	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/server"
)

func testConfig() *config.Config {
	return &config.Config{
		Global: config.GlobalConfig{
			ListenPort: 5000,
			LogLevel:   "info",
			ErrorPages: "page-not-found",
			PagesFile:  filepath.Join("..", "page", "testdata", "pages.yaml"),
		},
		Sites: []config.SiteConfig{
			{Name: "website-local", Base: "https://website.local/", RootPageID: 1000},
			{Name: "blog-local", Base: "https://blog.local/", RootPageID: 2000},
		},
	}
}

func loadFixture(t *testing.T, cfg *config.Config) (*page.Tree, *server.SiteRegistry) {
	t.Helper()
	tree, err := page.LoadScenario(cfg.Global.PagesFile)
	if err != nil {
		t.Fatalf("加载页面树失败: %v", err)
	}
	sites, err := server.NewSiteRegistry(cfg)
	if err != nil {
		t.Fatalf("构建站点注册表失败: %v", err)
	}
	return tree, sites
}

type testServer struct {
	app  *fiber.App
	logs *bytes.Buffer
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	tree, sites := loadFixture(t, cfg)

	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	handler, err := Build(cfg, tree, sites, logger)
	if err != nil {
		t.Fatalf("装配页面处理链失败: %v", err)
	}
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		Registry:   sites,
		Pages:      handler,
		ListenPort: cfg.Global.ListenPort,
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return &testServer{app: app, logs: logs}
}

func (s *testServer) get(t *testing.T, target string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

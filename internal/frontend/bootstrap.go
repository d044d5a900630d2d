package frontend

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/config"
	"github.com/any-hub/page-redirect/internal/errorpage"
	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/redirect"
	"github.com/any-hub/page-redirect/internal/server"
)

// Build 按 "页面树 → 目标解析 → 错误页 → 决策器 → Handler" 顺序装配页面处理链。
func Build(cfg *config.Config, tree page.Repository, sites *server.SiteRegistry, logger *logrus.Logger) (*Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	targets, err := NewTargets(tree, sites)
	if err != nil {
		return nil, err
	}
	router, err := NewPageRouter(tree, sites)
	if err != nil {
		return nil, err
	}

	builder, ok := errorpage.Fetch(cfg.Global.ErrorPages)
	if !ok {
		return nil, fmt.Errorf("error page builder %q is not registered", cfg.Global.ErrorPages)
	}

	resolver, err := redirect.NewResolver(targets, builder, logger, redirect.Options{
		ExposeRedirectInformation: cfg.Global.ExposeRedirectInformation,
		DisableExternalURL:        cfg.Global.DisablePageExternalURL,
	})
	if err != nil {
		return nil, err
	}
	return NewHandler(router, resolver, logger)
}

package frontend

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/doktype"
	"github.com/any-hub/page-redirect/internal/logging"
	"github.com/any-hub/page-redirect/internal/redirect"
	"github.com/any-hub/page-redirect/internal/server"
)

// Decider 是 Handler 依赖的跳转决策能力，测试中可替换。
type Decider interface {
	Decide(ctx redirect.RequestContext) redirect.Outcome
}

// Handler 实现 server.PageHandler：路由 → 决策 → 输出跳转/错误/页面。
type Handler struct {
	router  *PageRouter
	decider Decider
	logger  *logrus.Logger
}

// NewHandler 创建页面处理器，三个依赖都不能为空。
func NewHandler(router *PageRouter, decider Decider, logger *logrus.Logger) (*Handler, error) {
	if router == nil {
		return nil, errors.New("page router is required")
	}
	if decider == nil {
		return nil, errors.New("redirect decider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Handler{router: router, decider: decider, logger: logger}, nil
}

// Handle 处理单个页面请求，并为每个请求输出一条 page_request 日志。
func (h *Handler) Handle(c fiber.Ctx, site *server.SiteRoute) error {
	if site == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "site_unmapped"})
	}
	started := time.Now()
	requestID := server.RequestID(c)
	query := requestQuery(c)

	routed, err := h.router.Route(site, string(c.Request().URI().Path()), query)
	if err != nil {
		return h.respondRouteError(c, site, err, requestID, started)
	}

	ctx := redirect.RequestContext{
		URI:           requestURI(c, site),
		Page:          routed.Page,
		RoutingPageID: routed.RoutingPage.ID,
		SiteURL:       site.Base,
		Site:          site.Name(),
		Query:         query,
		RequestID:     requestID,
	}

	outcome, err := h.decide(ctx)
	if err != nil {
		h.logRequest(site, ctx, "panic", fiber.StatusInternalServerError, "", started).Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "redirect_decision_panic"})
	}

	switch {
	case outcome.IsRedirect():
		return h.writeRedirect(c, site, ctx, outcome.Redirect, started)
	case outcome.IsError():
		return h.writeError(c, site, ctx, outcome.Error, started)
	default:
		return h.render(c, site, ctx, started)
	}
}

func (h *Handler) decide(ctx redirect.RequestContext) (outcome redirect.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.decider.Decide(ctx), nil
}

func (h *Handler) writeRedirect(c fiber.Ctx, site *server.SiteRoute, ctx redirect.RequestContext, directive *redirect.RedirectDirective, started time.Time) error {
	server.ApplyHeaders(&c.Response().Header, directive.Header)
	c.Set(fiber.HeaderLocation, directive.URI)
	h.logRequest(site, ctx, redirect.OutcomeRedirect.String(), directive.StatusCode, directive.URI, started).Info("redirect")
	return c.SendStatus(directive.StatusCode)
}

func (h *Handler) writeError(c fiber.Ctx, site *server.SiteRoute, ctx redirect.RequestContext, directive *redirect.ErrorDirective, started time.Time) error {
	status := directive.StatusCode
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	server.ApplyHeaders(&c.Response().Header, directive.Response.Header)
	entry := h.logRequest(site, ctx, redirect.OutcomeError.String(), status, "", started)
	entry.WithField("reason", directive.Reason).Warn("error response")
	return c.Status(status).Send(directive.Response.Body)
}

// render 输出页面 JSON；只有可渲染类型（default、非 overlay 的 mount point）才会走到这里并返回 200。
func (h *Handler) render(c fiber.Ctx, site *server.SiteRoute, ctx redirect.RequestContext, started time.Time) error {
	meta, ok := doktype.Resolve(ctx.Page.DocType)
	if !ok || !meta.Renderable {
		h.logRequest(site, ctx, redirect.OutcomePassthrough.String(), fiber.StatusNotFound, "", started).Info("page not renderable")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "page_not_renderable",
			"page_id": ctx.Page.ID,
			"doktype": ctx.Page.DocType,
		})
	}

	h.logRequest(site, ctx, redirect.OutcomePassthrough.String(), fiber.StatusOK, "", started).Info("render")
	return c.JSON(fiber.Map{
		"page": ctx.Page,
		"site": site.Name(),
	})
}

func (h *Handler) respondRouteError(c fiber.Ctx, site *server.SiteRoute, err error, requestID string, started time.Time) error {
	var routeErr *RouteError
	if !errors.As(err, &routeErr) {
		routeErr = &RouteError{Status: fiber.StatusInternalServerError, Code: "routing_failed", Message: err.Error()}
	}
	fields := logging.Merge(
		logging.RequestFields(site.Name(), site.Host, 0, ""),
		logging.DecisionFields("route_error", routeErr.Status, ""),
	)
	fields["action"] = "page_request"
	fields["request_id"] = requestID
	fields["path"] = string(c.Request().URI().Path())
	fields["elapsed_ms"] = time.Since(started).Milliseconds()
	h.logger.WithFields(fields).Info(routeErr.Message)

	return c.Status(routeErr.Status).JSON(fiber.Map{
		"error":   routeErr.Code,
		"message": routeErr.Message,
	})
}

func (h *Handler) logRequest(site *server.SiteRoute, ctx redirect.RequestContext, outcome string, status int, location string, started time.Time) *logrus.Entry {
	fields := logging.Merge(
		logging.RequestFields(site.Name(), site.Host, ctx.Page.ID, string(ctx.Page.DocType)),
		logging.DecisionFields(outcome, status, location),
	)
	fields["action"] = "page_request"
	fields["request_id"] = ctx.RequestID
	fields["routing_page_id"] = ctx.RoutingPageID
	fields["elapsed_ms"] = time.Since(started).Milliseconds()
	return h.logger.WithFields(fields)
}

func requestQuery(c fiber.Ctx) url.Values {
	// 解析失败时保留已解析的部分
	values, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return values
}

// requestURI 返回请求的对外地址：协议与域名取自站点 Base（反向代理终止 TLS 时连接协议恒为 http），
// 路径与查询取自请求。
func requestURI(c fiber.Ctx, site *server.SiteRoute) string {
	if site == nil || site.BaseURL == nil {
		return c.BaseURL() + string(c.Request().RequestURI())
	}
	return site.BaseURL.Scheme + "://" + site.BaseURL.Host + string(c.Request().RequestURI())
}

package routes

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/page-redirect/internal/doktype"
	"github.com/any-hub/page-redirect/internal/errorpage"
	"github.com/any-hub/page-redirect/internal/server"
)

// DiagnosticsOptions 携带诊断接口需要展示、但不属于站点注册表的运行时信息。
type DiagnosticsOptions struct {
	// ErrorPages 为当前启用的错误页构建器键。
	ErrorPages string
	// PageCount 为已加载页面树的页面数量。
	PageCount int
}

// RegisterDiagnosticsRoutes 暴露 /-/sites、/-/doktypes、/-/errorpages 诊断接口，
// 供运维确认站点绑定、页面类型与错误页配置。
func RegisterDiagnosticsRoutes(app *fiber.App, registry *server.SiteRegistry, opts DiagnosticsOptions) {
	if app == nil || registry == nil {
		return
	}

	app.Get("/-/sites", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"sites": encodeSiteBindings(registry.List()),
			"pages": opts.PageCount,
		})
	})

	app.Get("/-/doktypes", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"doktypes": encodeDoktypes(doktype.List()),
		})
	})

	app.Get("/-/doktypes/:key", func(c fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "doktype_key_required"})
		}
		meta, ok := lookupDoktype(key)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "doktype_not_found"})
		}
		return c.JSON(encodeDoktype(meta))
	})

	app.Get("/-/errorpages", func(c fiber.Ctx) error {
		keys := append(errorpage.Keys(), opts.ErrorPages)
		return c.JSON(fiber.Map{
			"active":   opts.ErrorPages,
			"builders": errorpage.Snapshot(keys),
		})
	})
}

// lookupDoktype 同时接受键名（shortcut）与数值（4）。
func lookupDoktype(raw string) (doktype.Metadata, bool) {
	if value, err := strconv.Atoi(raw); err == nil {
		return doktype.ResolveValue(value)
	}
	return doktype.Resolve(doktype.Normalize(raw))
}

type doktypePayload struct {
	Key                 string `json:"key"`
	Value               int    `json:"value"`
	Description         string `json:"description"`
	DefaultRedirectCode int    `json:"default_redirect_code,omitempty"`
	Renderable          bool   `json:"renderable"`
}

type siteBindingPayload struct {
	SiteName   string `json:"site_name"`
	Base       string `json:"base"`
	Domain     string `json:"domain"`
	RootPageID int    `json:"root_page_id"`
	Port       int    `json:"port"`
}

func encodeDoktypes(kinds []doktype.Metadata) []doktypePayload {
	if len(kinds) == 0 {
		return nil
	}
	result := make([]doktypePayload, 0, len(kinds))
	for _, meta := range kinds {
		result = append(result, encodeDoktype(meta))
	}
	return result
}

func encodeDoktype(meta doktype.Metadata) doktypePayload {
	return doktypePayload{
		Key:                 string(meta.Key),
		Value:               meta.Value,
		Description:         meta.Description,
		DefaultRedirectCode: meta.DefaultRedirectCode,
		Renderable:          meta.Renderable,
	}
}

func encodeSiteBindings(routes []server.SiteRoute) []siteBindingPayload {
	if len(routes) == 0 {
		return nil
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Config.Name < routes[j].Config.Name
	})
	result := make([]siteBindingPayload, 0, len(routes))
	for _, route := range routes {
		result = append(result, siteBindingPayload{
			SiteName:   route.Config.Name,
			Base:       route.Base,
			Domain:     route.Host,
			RootPageID: route.RootPageID,
			Port:       route.ListenPort,
		})
	}
	return result
}

package server

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/any-hub/page-redirect/internal/config"
)

// SiteRoute 将站点配置与派生属性（解析后的 Base URL、访问域名）聚合在一起，
// 供路由/页面解析层直接复用，避免重复解析配置。
type SiteRoute struct {
	// Config 是用户在 config.toml 中声明的站点字段副本，避免外部修改。
	Config config.SiteConfig
	// BaseURL 在构造 Registry 时提前解析完成。
	BaseURL *url.URL
	// Base 是带结尾斜杠的站点地址，相对链接与 slug 都拼接在它之后。
	Base string
	// Host 为规范化后的访问域名（小写、无端口）。
	Host       string
	RootPageID int
	// ListenPort 记录当前 CLI 监听端口，方便日志输出。
	ListenPort int
}

// Name 返回站点名，nil 安全。
func (r *SiteRoute) Name() string {
	if r == nil {
		return ""
	}
	return r.Config.Name
}

// SiteRegistry 提供 Host/Host:port 到 SiteRoute 的查询能力，所有站点共享同一个监听端口。
type SiteRegistry struct {
	routes  map[string]*SiteRoute
	byRoot  map[int]*SiteRoute
	ordered []*SiteRoute
}

// NewSiteRegistry 根据配置构建 Host 映射。调用方应在启动阶段创建一次并复用。
func NewSiteRegistry(cfg *config.Config) (*SiteRegistry, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	registry := &SiteRegistry{
		routes: make(map[string]*SiteRoute, len(cfg.Sites)),
		byRoot: make(map[int]*SiteRoute, len(cfg.Sites)),
	}

	for _, site := range cfg.Sites {
		route, err := buildSiteRoute(cfg, site)
		if err != nil {
			return nil, err
		}
		if _, exists := registry.routes[route.Host]; exists {
			return nil, fmt.Errorf("duplicate domain mapping detected for %s", route.Host)
		}
		if _, exists := registry.byRoot[route.RootPageID]; exists {
			return nil, fmt.Errorf("duplicate root page %d for site %s", route.RootPageID, site.Name)
		}

		registry.routes[route.Host] = route
		registry.byRoot[route.RootPageID] = route
		registry.ordered = append(registry.ordered, route)
	}

	return registry, nil
}

// Lookup 根据 Host 或 Host:port 查找 SiteRoute，端口与大小写不参与匹配。
func (r *SiteRegistry) Lookup(host string) (*SiteRoute, bool) {
	if r == nil {
		return nil, false
	}

	normalizedHost, _ := normalizeHost(host)
	if normalizedHost == "" {
		return nil, false
	}

	route, ok := r.routes[normalizedHost]
	return route, ok
}

// List 返回当前注册的 SiteRoute 列表（按配置定义的顺序），用于 /-/sites 输出。
func (r *SiteRegistry) List() []SiteRoute {
	if r == nil || len(r.ordered) == 0 {
		return nil
	}

	result := make([]SiteRoute, len(r.ordered))
	for i, route := range r.ordered {
		result[i] = *route
	}
	return result
}

// RootLiner 是 SiteForPage 所需的最小页面树能力。
type RootLiner interface {
	RootLine(id int) []int
}

// SiteForPage 沿页面 root line 向上查找第一个作为站点根的页面，返回其所属站点。
func (r *SiteRegistry) SiteForPage(tree RootLiner, pageID int) (*SiteRoute, bool) {
	if r == nil || tree == nil {
		return nil, false
	}
	for _, id := range tree.RootLine(pageID) {
		if route, ok := r.byRoot[id]; ok {
			return route, true
		}
	}
	return nil, false
}

func buildSiteRoute(cfg *config.Config, site config.SiteConfig) (*SiteRoute, error) {
	base := site.BaseURL()
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base for site %s: %w", site.Name, err)
	}
	host := normalizeDomain(parsed.Host)
	if host == "" {
		return nil, fmt.Errorf("invalid domain for site %s", site.Name)
	}

	return &SiteRoute{
		Config:     site,
		BaseURL:    parsed,
		Base:       base,
		Host:       host,
		RootPageID: site.RootPageID,
		ListenPort: cfg.Global.ListenPort,
	}, nil
}

func normalizeDomain(domain string) string {
	host, _ := normalizeHost(domain)
	return host
}

func normalizeHost(raw string) (string, int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", 0
	}

	host := raw
	port := 0

	if strings.Contains(raw, ":") {
		if h, p, err := net.SplitHostPort(raw); err == nil {
			host = h
			if parsedPort, err := strconv.Atoi(p); err == nil {
				port = parsedPort
			}
		} else if idx := strings.LastIndex(raw, ":"); idx > -1 && strings.Count(raw[idx+1:], ":") == 0 {
			if parsedPort, err := strconv.Atoi(raw[idx+1:]); err == nil {
				host = raw[:idx]
				port = parsedPort
			}
		}
	}

	host = strings.TrimSuffix(host, ".")
	host = strings.ToLower(host)
	return host, port
}

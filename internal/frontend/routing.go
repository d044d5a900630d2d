package frontend

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/server"
)

const (
	msgPageMissing   = "The requested page does not exist"
	msgOutsideDomain = "ID was outside the domain"
)

// pageIDPattern 只接受严格的正整数，1110.0、11e10、step1110 之类都视为不存在。
var pageIDPattern = regexp.MustCompile(`^[1-9][0-9]*$`)

// RouteError 是页面路由失败时的 HTTP 错误，Code 写入 JSON 的 error 字段。
type RouteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func pageMissing() error {
	return &RouteError{Status: fiber.StatusNotFound, Code: "page_not_found", Message: msgPageMissing}
}

// Routed 是路由结果：RoutingPage 为请求直接命中的页面，Page 为跟随 shortcut 链之后的页面。
type Routed struct {
	RoutingPage page.Record
	Page        page.Record
	Site        *server.SiteRoute
}

// PageRouter 根据站点与请求路径定位页面。
type PageRouter struct {
	tree  page.Repository
	sites *server.SiteRegistry
	chain *shortcutChain
	slugs map[string]int
}

// NewPageRouter 预先建立 "站点根/slug → 页面" 索引；同一站点内重复的 slug 以 id 较小者为准。
func NewPageRouter(tree page.Repository, sites *server.SiteRegistry) (*PageRouter, error) {
	if tree == nil {
		return nil, errors.New("page tree is required")
	}
	if sites == nil {
		return nil, errors.New("site registry is required")
	}
	r := &PageRouter{
		tree:  tree,
		sites: sites,
		chain: &shortcutChain{tree: tree},
		slugs: make(map[string]int),
	}
	for _, rec := range tree.Records() {
		if rec.Hidden {
			continue
		}
		site, ok := sites.SiteForPage(tree, rec.ID)
		if !ok {
			continue
		}
		key := slugKey(site.RootPageID, rec.Slug)
		if _, exists := r.slugs[key]; !exists {
			r.slugs[key] = rec.ID
		}
	}
	return r, nil
}

// Route 解析页面。带 id 参数时按 id 查找并确认页面属于当前站点，否则按路径匹配 slug。
func (r *PageRouter) Route(site *server.SiteRoute, path string, query url.Values) (Routed, error) {
	if site == nil {
		return Routed{}, errors.New("site is required")
	}

	var id int
	if query.Has("id") {
		raw := query.Get("id")
		if !pageIDPattern.MatchString(raw) {
			return Routed{}, pageMissing()
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Routed{}, pageMissing()
		}
		id = parsed
	} else {
		var ok bool
		if id, ok = r.bySlug(site, path); !ok {
			return Routed{}, pageMissing()
		}
	}

	rec, err := r.tree.Visible(id)
	if err != nil {
		return Routed{}, pageMissing()
	}
	owner, ok := r.sites.SiteForPage(r.tree, rec.ID)
	if !ok || owner.RootPageID != site.RootPageID {
		return Routed{}, &RouteError{Status: fiber.StatusNotFound, Code: "page_outside_site", Message: msgOutsideDomain}
	}

	resolved := rec
	if final, broken := r.chain.follow(rec); broken == nil {
		resolved = final
	}

	return Routed{RoutingPage: rec, Page: resolved, Site: site}, nil
}

func (r *PageRouter) bySlug(site *server.SiteRoute, path string) (int, bool) {
	switch path {
	case "", "/", "/index.php":
		return site.RootPageID, true
	}
	id, ok := r.slugs[slugKey(site.RootPageID, path)]
	return id, ok
}

func slugKey(root int, slug string) string {
	return fmt.Sprintf("%d:%s", root, normalizeSlug(slug))
}

// normalizeSlug 统一为以 / 开头、不以 / 结尾（根路径除外）的形式。
func normalizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = "/" + strings.Trim(slug, "/")
	return slug
}

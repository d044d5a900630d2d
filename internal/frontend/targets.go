package frontend

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/any-hub/page-redirect/internal/doktype"
	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/redirect"
	"github.com/any-hub/page-redirect/internal/server"
)

const (
	reasonShortcutLoop        = "shortcut_loop"
	reasonShortcutUnreachable = "shortcut_target_unreachable"
	reasonMountUnreachable    = "mountpoint_target_unreachable"
)

// chainError 描述 shortcut 链无法走通的原因。
type chainError struct {
	status int
	reason string
	msg    string
}

// shortcutChain 跟随 shortcut 直到落在非 shortcut 页面。
type shortcutChain struct {
	tree page.Repository
}

func (s *shortcutChain) follow(start page.Record) (page.Record, *chainError) {
	seen := map[int]struct{}{start.ID: {}}
	current := start
	for current.Is(doktype.KindShortcut) {
		next, broken := s.next(current)
		if broken != nil {
			return page.Record{}, broken
		}
		if _, loop := seen[next.ID]; loop {
			return page.Record{}, &chainError{
				status: http.StatusInternalServerError,
				reason: reasonShortcutLoop,
				msg:    "Shortcut loop detected",
			}
		}
		seen[next.ID] = struct{}{}
		current = next
	}
	return current, nil
}

func (s *shortcutChain) next(rec page.Record) (page.Record, *chainError) {
	unreachable := &chainError{
		status: http.StatusNotFound,
		reason: reasonShortcutUnreachable,
		msg:    "Shortcut target could not be found",
	}

	switch rec.EffectiveShortcutMode() {
	case page.ShortcutModeParent:
		if rec.ParentID == 0 {
			return page.Record{}, unreachable
		}
		target, err := s.tree.Visible(rec.ParentID)
		if err != nil {
			return page.Record{}, unreachable
		}
		return target, nil
	case page.ShortcutModePage:
		if rec.Shortcut != 0 {
			target, err := s.tree.Visible(rec.Shortcut)
			if err != nil {
				return page.Record{}, unreachable
			}
			return target, nil
		}
	}

	// first-subpage，以及未填写目标的 page 模式
	child, ok := s.tree.FirstChild(rec.ID)
	if !ok {
		return page.Record{}, unreachable
	}
	return child, nil
}

// Targets 实现 redirect.TargetResolver：目标地址为目标页面所属站点的 Base 加 slug。
type Targets struct {
	tree  page.Repository
	sites *server.SiteRegistry
	chain *shortcutChain
}

// NewTargets 创建目标解析器。
func NewTargets(tree page.Repository, sites *server.SiteRegistry) (*Targets, error) {
	if tree == nil {
		return nil, errors.New("page tree is required")
	}
	if sites == nil {
		return nil, errors.New("site registry is required")
	}
	return &Targets{tree: tree, sites: sites, chain: &shortcutChain{tree: tree}}, nil
}

// ResolveShortcutTarget 从请求命中的页面出发走完 shortcut 链；跳转码取自该起点页面。
func (t *Targets) ResolveShortcutTarget(ctx redirect.RequestContext) redirect.Resolution {
	origin, ok := t.tree.Lookup(ctx.RoutingPageID)
	if !ok || !origin.Is(doktype.KindShortcut) {
		return redirect.NoTarget()
	}

	target, broken := t.chain.follow(origin)
	if broken != nil {
		return immediate(broken.status, broken.reason, broken.msg, origin.ID)
	}
	uri, ok := t.uriFor(target, ctx.Query)
	if !ok {
		return immediate(http.StatusNotFound, reasonShortcutUnreachable, "Shortcut target is not part of any site", origin.ID)
	}
	return redirect.Target(uri, origin)
}

// ResolveMountPointTarget 只处理 overlay 模式的 mount point，跳转到被挂载页面。
func (t *Targets) ResolveMountPointTarget(ctx redirect.RequestContext) redirect.Resolution {
	mount := ctx.Page
	if !mount.Is(doktype.KindMountPoint) || !mount.MountOverlay || mount.MountPageID == 0 {
		return redirect.NoTarget()
	}

	mounted, err := t.tree.Visible(mount.MountPageID)
	if err != nil {
		return immediate(http.StatusNotFound, reasonMountUnreachable, "Mounted page could not be found", mount.ID)
	}
	uri, ok := t.uriFor(mounted, ctx.Query)
	if !ok {
		return immediate(http.StatusNotFound, reasonMountUnreachable, "Mounted page is not part of any site", mount.ID)
	}
	return redirect.Target(uri, mount)
}

// uriFor 生成页面的绝对地址，非 0 的 type 参数会被保留。
func (t *Targets) uriFor(rec page.Record, query url.Values) (string, bool) {
	site, ok := t.sites.SiteForPage(t.tree, rec.ID)
	if !ok {
		return "", false
	}
	uri := site.Base + strings.TrimPrefix(normalizeSlug(rec.Slug), "/")
	if pageType := query.Get("type"); pageType != "" && pageType != "0" {
		uri += "?" + url.Values{"type": {pageType}}.Encode()
	}
	return uri, true
}

func immediate(status int, reason, message string, pageID int) redirect.Resolution {
	body, err := json.Marshal(map[string]interface{}{
		"error":   reason,
		"message": message,
		"page_id": pageID,
	})
	if err != nil {
		body = []byte(`{"error":"` + reason + `"}`)
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return redirect.Immediate(reason, redirect.Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
	})
}

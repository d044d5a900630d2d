package redirect

import (
	"net/url"

	"github.com/any-hub/page-redirect/internal/page"
)

// RequestContext 是一次决策的只读输入，由调用方在页面解析完成后构建。
type RequestContext struct {
	// URI 是客户端请求的完整地址，用于防止跳转到自身。
	URI string
	// Page 是 shortcut/mount point 链条解析完成后的页面。
	Page page.Record
	// RoutingPageID 是请求最初命中的页面 id，诊断头使用该值。
	RoutingPageID int
	// SiteURL 是当前站点的绝对地址（含结尾斜杠），用于补全相对外链。
	SiteURL   string
	Site      string
	Query     url.Values
	RequestID string
}

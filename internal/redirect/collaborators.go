package redirect

import "github.com/any-hub/page-redirect/internal/page"

// ImmediateResponse 表示协作方已经决定了最终响应，决策流程必须立即停止。
type ImmediateResponse struct {
	Reason   string
	Response Response
}

// Resolution 是 shortcut/mount point 目标查询的结果：无目标、有目标或立即响应三者之一。
type Resolution struct {
	URI string
	// Origin 是最初配置 shortcut/mount point 的页面，只读取其 RedirectCode。
	Origin    *page.Record
	Immediate *ImmediateResponse
}

// NoTarget 表示当前请求不需要 shortcut/mount point 跳转。
func NoTarget() Resolution {
	return Resolution{}
}

// Target 构造一个带来源页面的目标结果。
func Target(uri string, origin page.Record) Resolution {
	return Resolution{URI: uri, Origin: &origin}
}

// Immediate 构造立即响应结果。
func Immediate(reason string, resp Response) Resolution {
	return Resolution{Immediate: &ImmediateResponse{Reason: reason, Response: resp}}
}

// Found 返回是否解析到了目标地址。
func (r Resolution) Found() bool {
	return r.Immediate == nil && r.URI != ""
}

// TargetResolver 由页面路由层实现，负责跟随 shortcut/mount point 并生成目标地址。
type TargetResolver interface {
	ResolveShortcutTarget(ctx RequestContext) Resolution
	ResolveMountPointTarget(ctx RequestContext) Resolution
}

// ErrorPageBuilder 在外链页面无法解析时构建错误页；返回 nil 表示交给正常渲染流程。
type ErrorPageBuilder interface {
	BuildAccessFailureResponse(ctx RequestContext) *Response
}

// ErrorPageBuilderFunc 允许用函数实现 ErrorPageBuilder。
type ErrorPageBuilderFunc func(ctx RequestContext) *Response

// BuildAccessFailureResponse 使 ErrorPageBuilderFunc 满足 ErrorPageBuilder。
func (f ErrorPageBuilderFunc) BuildAccessFailureResponse(ctx RequestContext) *Response {
	return f(ctx)
}

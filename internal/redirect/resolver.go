package redirect

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/doktype"
)

// HeaderRedirectBy 标记跳转来源，便于排查是哪一步产生的跳转。
const HeaderRedirectBy = "X-Redirect-By"

// ReasonInvalidExternalURL 是外链无法解析时 ErrorDirective 的原因码。
const ReasonInvalidExternalURL = "invalid_external_url"

const (
	redirectByShortcut = "Shortcut/Mountpoint"
	redirectByExternal = "External URL"
)

// Options 控制决策中的全局开关。
type Options struct {
	// ExposeRedirectInformation 为 true 时在 X-Redirect-By 中附带页面 id。
	ExposeRedirectInformation bool
	// DisableExternalURL 跳过外链页面检查，交由渲染层处理。
	DisableExternalURL bool
}

// Resolver 按固定顺序执行 shortcut/mount point、外链页面检查。
type Resolver struct {
	targets    TargetResolver
	errorPages ErrorPageBuilder
	logger     logrus.FieldLogger
	opts       Options
}

// NewResolver 创建决策器；errorPages 为 nil 时外链无法解析直接放行。
func NewResolver(targets TargetResolver, errorPages ErrorPageBuilder, logger logrus.FieldLogger, opts Options) (*Resolver, error) {
	if targets == nil {
		return nil, fmt.Errorf("target resolver is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Resolver{
		targets:    targets,
		errorPages: errorPages,
		logger:     logger,
		opts:       opts,
	}, nil
}

// Decide 为单次请求给出唯一结果：放行、跳转或错误响应。
func (r *Resolver) Decide(ctx RequestContext) Outcome {
	uri, code, immediate := r.shortcutOrMountPoint(ctx)
	if immediate != nil {
		return failWith(immediate.Reason, immediate.Response)
	}
	if uri != "" && uri != ctx.URI {
		return redirectTo(uri, code, r.redirectBy(redirectByShortcut, ctx.RoutingPageID))
	}

	if !r.opts.DisableExternalURL && ctx.Page.Is(doktype.KindLink) {
		return r.externalURL(ctx)
	}
	return Passthrough()
}

func (r *Resolver) shortcutOrMountPoint(ctx RequestContext) (string, int, *ImmediateResponse) {
	shortcut := r.targets.ResolveShortcutTarget(ctx)
	if shortcut.Immediate != nil {
		return "", 0, shortcut.Immediate
	}
	if shortcut.Found() {
		return shortcut.URI, originCode(shortcut.Origin, DefaultCodeFor(doktype.KindShortcut)), nil
	}

	mount := r.targets.ResolveMountPointTarget(ctx)
	if mount.Immediate != nil {
		return "", 0, mount.Immediate
	}
	if mount.Found() {
		return mount.URI, originCode(mount.Origin, DefaultCodeFor(doktype.KindMountPoint)), nil
	}
	return "", 0, nil
}

func (r *Resolver) externalURL(ctx RequestContext) Outcome {
	target := NormalizeExternalURL(ctx.Page.URL, ctx.SiteURL)
	if target != "" {
		code := EffectiveCode(ctx.Page.RedirectCode, DefaultCodeFor(doktype.KindLink))
		return redirectTo(target, code, r.redirectBy(redirectByExternal, ctx.Page.ID))
	}

	r.logger.WithFields(logrus.Fields{
		"action":     "external_url",
		"page_id":    ctx.Page.ID,
		"page":       ctx.Page.LogFields(),
		"request_id": ctx.RequestID,
	}).Error(`Page of type "External URL" could not be resolved properly`)

	if r.errorPages == nil {
		return Passthrough()
	}
	if resp := r.errorPages.BuildAccessFailureResponse(ctx); resp != nil {
		return failWith(ReasonInvalidExternalURL, *resp)
	}
	return Passthrough()
}

func (r *Resolver) redirectBy(message string, pageID int) string {
	if r.opts.ExposeRedirectInformation {
		return fmt.Sprintf("%s at page with ID %d", message, pageID)
	}
	return message
}

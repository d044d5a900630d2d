package redirect

import (
	"github.com/any-hub/page-redirect/internal/doktype"
	"github.com/any-hub/page-redirect/internal/page"
)

// 页面类型未注册或未声明默认跳转码时使用的兜底值。
const (
	fallbackRedirectCode    = 307
	fallbackExternalURLCode = 303
)

// DefaultCodeFor 返回页面类型在 doktype 注册表中声明的默认跳转码。
func DefaultCodeFor(kind doktype.Kind) int {
	if meta, ok := doktype.Resolve(kind); ok && meta.DefaultRedirectCode > 0 {
		return meta.DefaultRedirectCode
	}
	if kind == doktype.KindLink {
		return fallbackExternalURLCode
	}
	return fallbackRedirectCode
}

// EffectiveCode 在页面显式配置了 redirect_code 时优先使用，否则回退到类型默认值。
func EffectiveCode(explicit, fallback int) int {
	if explicit > 0 {
		return explicit
	}
	return fallback
}

func originCode(origin *page.Record, fallback int) int {
	if origin == nil {
		return fallback
	}
	return EffectiveCode(origin.RedirectCode, fallback)
}

package server

import (
	"net/http"
	"net/textproto"
)

// hopByHopHeaders 定义 RFC 7230 中禁止转发的头部，协作方构建的响应同样不得携带。
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Proxy-Connection":    {},
}

// HeaderWriter 是响应头的最小写入能力，*fasthttp.ResponseHeader 满足该接口。
type HeaderWriter interface {
	Del(key string)
	Add(key, value string)
}

// CopyHeaders 将 src 中允许输出的头复制到 dst，自动忽略 hop-by-hop 字段；
// 同名多值头会被逐个追加。
func CopyHeaders(dst, src http.Header) {
	for key, values := range src {
		if isHopByHopHeader(key) {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

// ApplyHeaders 将 src 原样写入响应：同名头先清空再逐个追加，多值（如多个 Set-Cookie）全部保留。
func ApplyHeaders(dst HeaderWriter, src http.Header) {
	filtered := make(http.Header, len(src))
	CopyHeaders(filtered, src)
	for key, values := range filtered {
		dst.Del(key)
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func isHopByHopHeader(key string) bool {
	_, ok := hopByHopHeaders[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}

package redirect

import (
	"net/mail"
	"net/url"
	"strings"
)

// NormalizeExternalURL 补全外链页面的 url 字段：
//   - 带协议的地址原样返回；
//   - 合法邮箱补 mailto:；
//   - 以 / 开头的站内绝对路径原样返回；
//   - 其余相对地址拼接站点前缀。
//
// 空白输入返回空字符串，由调用方视为无法解析。
func NormalizeExternalURL(raw, sitePrefix string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if hasScheme(raw) {
		return raw
	}
	if ValidEmail(raw) {
		return "mailto:" + raw
	}
	if strings.HasPrefix(raw, "/") {
		return raw
	}
	return sitePrefix + raw
}

// hasScheme 解析失败时按无协议处理。host:port 形式（localhost:8080/x）
// 冒号后紧跟纯数字端口，视为不带协议的相对地址。
func hasScheme(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return false
	}
	return !looksLikePort(parsed.Opaque)
}

// looksLikePort 判断 opaque 部分是否以 "数字端口" 开头并以 / 或结尾收束。
func looksLikePort(opaque string) bool {
	port := opaque
	if idx := strings.IndexByte(opaque, '/'); idx >= 0 {
		port = opaque[:idx]
	}
	if port == "" {
		return false
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidEmail 只接受裸地址（不含显示名和尖括号）。
func ValidEmail(raw string) bool {
	if raw == "" || len(raw) > 320 || strings.ContainsAny(raw, " \t\r\n<>") {
		return false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return false
	}
	at := strings.LastIndex(raw, "@")
	if at <= 0 || at == len(raw)-1 {
		return false
	}
	domain := raw[at+1:]
	return !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".") && !strings.Contains(domain, "..")
}

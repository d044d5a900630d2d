package doktype

// allowedRedirectCodes 对应页面 redirect_code 字段的可选值，0 表示沿用类型默认值。
var allowedRedirectCodes = map[int]struct{}{
	0:   {},
	301: {},
	302: {},
	303: {},
	307: {},
	308: {},
}

// ValidRedirectCode 判断页面上配置的 redirect_code 是否可用。
func ValidRedirectCode(code int) bool {
	_, ok := allowedRedirectCodes[code]
	return ok
}

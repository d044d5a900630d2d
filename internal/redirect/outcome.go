package redirect

import "net/http"

// OutcomeKind 表示一次跳转决策的结果种类。
type OutcomeKind int

const (
	// OutcomePassthrough 继续正常渲染。
	OutcomePassthrough OutcomeKind = iota
	// OutcomeRedirect 返回跳转响应。
	OutcomeRedirect
	// OutcomeError 返回协作方构建好的错误响应。
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRedirect:
		return "redirect"
	case OutcomeError:
		return "error"
	default:
		return "passthrough"
	}
}

// Response 是协作方预先构建好的完整响应，调用方应原样输出。
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RedirectDirective 描述一次跳转，构造后不再修改。
type RedirectDirective struct {
	URI        string
	StatusCode int
	Header     http.Header
}

// ErrorDirective 包装错误原因与需要输出的响应。
type ErrorDirective struct {
	Reason     string
	StatusCode int
	Response   Response
}

// Outcome 是 Decide 的返回值，Kind 决定 Redirect/Error 中哪个字段有效。
type Outcome struct {
	Kind     OutcomeKind
	Redirect *RedirectDirective
	Error    *ErrorDirective
}

// Passthrough 表示调用方继续渲染页面。
func Passthrough() Outcome {
	return Outcome{Kind: OutcomePassthrough}
}

func redirectTo(uri string, status int, redirectBy string) Outcome {
	header := http.Header{}
	header.Set(HeaderRedirectBy, redirectBy)
	return Outcome{
		Kind: OutcomeRedirect,
		Redirect: &RedirectDirective{
			URI:        uri,
			StatusCode: status,
			Header:     header,
		},
	}
}

func failWith(reason string, resp Response) Outcome {
	return Outcome{
		Kind: OutcomeError,
		Error: &ErrorDirective{
			Reason:     reason,
			StatusCode: resp.StatusCode,
			Response:   resp,
		},
	}
}

// IsPassthrough 返回是否继续渲染。
func (o Outcome) IsPassthrough() bool { return o.Kind == OutcomePassthrough }

// IsRedirect 返回是否需要跳转。
func (o Outcome) IsRedirect() bool { return o.Kind == OutcomeRedirect && o.Redirect != nil }

// IsError 返回是否需要输出错误响应。
func (o Outcome) IsError() bool { return o.Kind == OutcomeError && o.Error != nil }

// StatusCode 返回该结果对应的 HTTP 状态码，passthrough 返回 0。
func (o Outcome) StatusCode() int {
	switch {
	case o.IsRedirect():
		return o.Redirect.StatusCode
	case o.IsError():
		return o.Error.StatusCode
	default:
		return 0
	}
}

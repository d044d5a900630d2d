package errorpage

import (
	"encoding/json"
	"net/http"

	"github.com/any-hub/page-redirect/internal/redirect"
)

const (
	// KeyNone 不构建错误页，外链无法解析时继续正常渲染。
	KeyNone = "none"
	// KeyPageNotFound 输出 404 JSON 错误页。
	KeyPageNotFound = "page-not-found"
)

func init() {
	MustRegister(KeyNone, redirect.ErrorPageBuilderFunc(func(redirect.RequestContext) *redirect.Response {
		return nil
	}))
	MustRegister(KeyPageNotFound, redirect.ErrorPageBuilderFunc(pageNotFound))
}

// pageNotFound 构建与其它 404 响应一致的 JSON 错误体。
func pageNotFound(ctx redirect.RequestContext) *redirect.Response {
	payload := map[string]interface{}{
		"error":   "page_not_found",
		"reason":  redirect.ReasonInvalidExternalURL,
		"message": `Page of type "External URL" could not be resolved properly`,
		"page_id": ctx.Page.ID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte(`{"error":"page_not_found"}`)
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if ctx.RequestID != "" {
		header.Set("X-Request-ID", ctx.RequestID)
	}
	return &redirect.Response{
		StatusCode: http.StatusNotFound,
		Header:     header,
		Body:       body,
	}
}

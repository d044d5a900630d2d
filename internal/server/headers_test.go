package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestCopyHeadersSkipsHopByHop(t *testing.T) {
	src := http.Header{}
	src.Add("Connection", "keep-alive")
	src.Add("Keep-Alive", "timeout=5")
	src.Add("X-Test-Header", "1")
	src.Add("x-test-header", "2")

	dst := http.Header{}
	CopyHeaders(dst, src)

	if _, exists := dst["Connection"]; exists {
		t.Fatalf("connection header should not be copied")
	}
	if _, exists := dst["Keep-Alive"]; exists {
		t.Fatalf("keep-alive header should not be copied")
	}

	got := dst.Values("X-Test-Header")
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}
}

func TestApplyHeadersReplacesAndKeepsAllValues(t *testing.T) {
	dst := http.Header{}
	dst.Set("X-Request-ID", "from-middleware")

	src := http.Header{}
	src.Add("Transfer-Encoding", "chunked")
	src.Add("X-Request-ID", "from-collaborator")
	src.Add("Vary", "Accept")
	src.Add("Vary", "Cookie")

	ApplyHeaders(headerMap(dst), src)

	if _, exists := dst["Transfer-Encoding"]; exists {
		t.Fatalf("transfer-encoding should be skipped")
	}
	if got := dst.Values("X-Request-ID"); len(got) != 1 || got[0] != "from-collaborator" {
		t.Fatalf("existing header should be replaced, got %v", got)
	}
	if got := dst.Values("Vary"); len(got) != 2 || got[0] != "Accept" || got[1] != "Cookie" {
		t.Fatalf("all values should survive in order, got %v", got)
	}
}

func TestApplyHeadersKeepsEverySetCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		src := http.Header{}
		src.Add("Set-Cookie", "a=1")
		src.Add("Set-Cookie", "b=2")
		src.Add("Connection", "close")
		ApplyHeaders(&c.Response().Header, src)
		return c.SendStatus(fiber.StatusGone)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	cookies := resp.Header.Values("Set-Cookie")
	if len(cookies) != 2 {
		t.Fatalf("expected both Set-Cookie values, got %v", cookies)
	}
	seen := map[string]bool{}
	for _, cookie := range cookies {
		seen[cookie] = true
	}
	if !seen["a=1"] || !seen["b=2"] {
		t.Fatalf("unexpected Set-Cookie values: %v", cookies)
	}
}

// headerMap 让 http.Header 满足 HeaderWriter，便于不经过 Fiber 断言写入结果。
type headerMap http.Header

func (h headerMap) Del(key string)        { http.Header(h).Del(key) }
func (h headerMap) Add(key, value string) { http.Header(h).Add(key, value) }

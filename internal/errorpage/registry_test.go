package errorpage

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/redirect"
)

func noop() redirect.ErrorPageBuilder {
	return redirect.ErrorPageBuilderFunc(func(redirect.RequestContext) *redirect.Response { return nil })
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	prev := map[interface{}]interface{}{}
	registry.Range(func(k, v interface{}) bool {
		prev[k] = v
		return true
	})
	registry = sync.Map{}
	t.Cleanup(func() {
		registry = sync.Map{}
		for k, v := range prev {
			registry.Store(k, v)
		}
	})
}

func TestRegisterAndFetch(t *testing.T) {
	withCleanRegistry(t)
	if err := Register("Test", noop()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, ok := Fetch("test"); !ok {
		t.Fatalf("expected fetch ok")
	}
	if Status("test") != "registered" {
		t.Fatalf("expected registered status")
	}
	if Status("missing") != "missing" {
		t.Fatalf("expected missing status")
	}
}

func TestRegisterRejectsDuplicateAndEmpty(t *testing.T) {
	withCleanRegistry(t)
	if err := Register("dup", noop()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := Register("dup", noop()); err != ErrDuplicateBuilder {
		t.Fatalf("expected ErrDuplicateBuilder, got %v", err)
	}
	if err := Register(" ", noop()); err == nil {
		t.Fatalf("empty key should fail")
	}
	if err := Register("nil", nil); err == nil {
		t.Fatalf("nil builder should fail")
	}
}

func TestSnapshot(t *testing.T) {
	withCleanRegistry(t)
	_ = Register("a", noop())
	snap := Snapshot([]string{"a", "b"})
	if snap["a"] != "registered" {
		t.Fatalf("expected a registered, got %s", snap["a"])
	}
	if snap["b"] != "missing" {
		t.Fatalf("expected b missing, got %s", snap["b"])
	}
}

func TestBuiltinBuilders(t *testing.T) {
	ctx := redirect.RequestContext{Page: page.Record{ID: 1330}, RequestID: "req-1"}

	none, ok := Fetch(KeyNone)
	if !ok {
		t.Fatalf("none builder should be registered")
	}
	if resp := none.BuildAccessFailureResponse(ctx); resp != nil {
		t.Fatalf("none builder should return nil, got %+v", resp)
	}

	notFound, ok := Fetch(KeyPageNotFound)
	if !ok {
		t.Fatalf("page-not-found builder should be registered")
	}
	resp := notFound.BuildAccessFailureResponse(ctx)
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
	if resp.Header.Get("X-Request-ID") != "req-1" {
		t.Fatalf("request id header missing")
	}
	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["reason"] != redirect.ReasonInvalidExternalURL {
		t.Fatalf("unexpected reason: %v", body["reason"])
	}
}

package doktype

import "testing"

func replaceRegistry(t *testing.T) func() {
	t.Helper()
	prev := globalRegistry
	globalRegistry = newRegistry()
	return func() { globalRegistry = prev }
}

func TestRegisterResolveAndList(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	if err := Register(Metadata{Key: "beta", Value: 20}); err != nil {
		t.Fatalf("register beta failed: %v", err)
	}
	if err := Register(Metadata{Key: "alpha", Value: 30}); err != nil {
		t.Fatalf("register alpha failed: %v", err)
	}

	if _, ok := Resolve("beta"); !ok {
		t.Fatalf("expected beta to resolve")
	}
	if _, ok := Resolve("BETA"); !ok {
		t.Fatalf("resolve should be case-insensitive")
	}
	if meta, ok := ResolveValue(30); !ok || meta.Key != "alpha" {
		t.Fatalf("expected value 30 to resolve alpha, got %+v", meta)
	}

	list := List()
	if len(list) != 2 {
		t.Fatalf("list length mismatch: %d", len(list))
	}
	if list[0].Key != "beta" || list[1].Key != "alpha" {
		t.Fatalf("list should be ordered by value: %+v", list)
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	cleanup := replaceRegistry(t)
	defer cleanup()

	if err := Register(Metadata{Key: "shortcut", Value: 4}); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	if err := Register(Metadata{Key: "shortcut", Value: 5}); err == nil {
		t.Fatalf("duplicate key should fail")
	}
	if err := Register(Metadata{Key: "other", Value: 4}); err == nil {
		t.Fatalf("duplicate value should fail")
	}
	if err := Register(Metadata{Key: "zero"}); err == nil {
		t.Fatalf("missing value should fail")
	}
}

func TestBuiltinDefaults(t *testing.T) {
	testCases := []struct {
		kind       Kind
		value      int
		code       int
		renderable bool
	}{
		{KindDefault, 1, 0, true},
		{KindLink, 3, 303, false},
		{KindShortcut, 4, 307, false},
		{KindMountPoint, 7, 307, true},
		{KindSpacer, 199, 0, false},
		{KindSysFolder, 254, 0, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			meta, ok := Resolve(tc.kind)
			if !ok {
				t.Fatalf("builtin %s not registered", tc.kind)
			}
			if meta.Value != tc.value {
				t.Fatalf("value mismatch: %d", meta.Value)
			}
			if meta.DefaultRedirectCode != tc.code {
				t.Fatalf("default code mismatch: %d", meta.DefaultRedirectCode)
			}
			if meta.Renderable != tc.renderable {
				t.Fatalf("renderable mismatch: %v", meta.Renderable)
			}
		})
	}
}

func TestValidRedirectCode(t *testing.T) {
	for _, code := range []int{0, 301, 302, 303, 307, 308} {
		if !ValidRedirectCode(code) {
			t.Fatalf("%d should be allowed", code)
		}
	}
	for _, code := range []int{200, 304, 404, -1} {
		if ValidRedirectCode(code) {
			t.Fatalf("%d should be rejected", code)
		}
	}
}

// Package errorpage 维护外链无法解析时使用的错误页构建器，按配置键选择具体策略。
package errorpage

import (
	"errors"
	"strings"
	"sync"

	"github.com/any-hub/page-redirect/internal/redirect"
)

var registry sync.Map

// ErrDuplicateBuilder indicates a key already has a builder registered.
var ErrDuplicateBuilder = errors.New("error page builder already registered")

// Register stores a builder for the given key.
func Register(key string, builder redirect.ErrorPageBuilder) error {
	normalized := normalizeKey(key)
	if normalized == "" {
		return errors.New("error page key required")
	}
	if builder == nil {
		return errors.New("error page builder required")
	}
	if _, loaded := registry.LoadOrStore(normalized, builder); loaded {
		return ErrDuplicateBuilder
	}
	return nil
}

// MustRegister panics on registration failure.
func MustRegister(key string, builder redirect.ErrorPageBuilder) {
	if err := Register(key, builder); err != nil {
		panic(err)
	}
}

// Fetch retrieves the builder associated with a key.
func Fetch(key string) (redirect.ErrorPageBuilder, bool) {
	normalized := normalizeKey(key)
	if normalized == "" {
		return nil, false
	}
	if value, ok := registry.Load(normalized); ok {
		if builder, ok := value.(redirect.ErrorPageBuilder); ok {
			return builder, true
		}
	}
	return nil, false
}

// Status returns registration status for a key.
func Status(key string) string {
	if _, ok := Fetch(key); ok {
		return "registered"
	}
	return "missing"
}

// Snapshot returns status for a list of keys.
func Snapshot(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if normalized := normalizeKey(key); normalized != "" {
			out[normalized] = Status(normalized)
		}
	}
	return out
}

// Keys returns all registered keys in no particular order.
func Keys() []string {
	var keys []string
	registry.Range(func(key, _ interface{}) bool {
		if s, ok := key.(string); ok {
			keys = append(keys, s)
		}
		return true
	})
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

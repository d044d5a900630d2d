package doktype

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var globalRegistry = newRegistry()

type registry struct {
	mu      sync.RWMutex
	kinds   map[Kind]Metadata
	byValue map[int]Kind
}

func newRegistry() *registry {
	return &registry{
		kinds:   make(map[Kind]Metadata),
		byValue: make(map[int]Kind),
	}
}

// Register 将页面类型加入全局注册表，重复键或重复数值会返回错误。
func Register(meta Metadata) error {
	return globalRegistry.register(meta)
}

// MustRegister 在注册失败时 panic，适合 init() 中调用。
func MustRegister(meta Metadata) {
	if err := Register(meta); err != nil {
		panic(err)
	}
}

// Resolve 返回指定键的页面类型元数据。
func Resolve(key Kind) (Metadata, bool) {
	return globalRegistry.resolve(key)
}

// ResolveValue 按数值（例如 4 = shortcut）查找页面类型。
func ResolveValue(value int) (Metadata, bool) {
	globalRegistry.mu.RLock()
	key, ok := globalRegistry.byValue[value]
	globalRegistry.mu.RUnlock()
	if !ok {
		return Metadata{}, false
	}
	return globalRegistry.resolve(key)
}

// List 返回按数值排序的页面类型列表。
func List() []Metadata {
	return globalRegistry.list()
}

// Keys 返回所有已注册类型的键值，供调试或诊断使用。
func Keys() []string {
	items := List()
	result := make([]string, len(items))
	for i, meta := range items {
		result[i] = string(meta.Key)
	}
	return result
}

// Normalize 将配置中的写法统一为小写键值。
func Normalize(raw string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(raw)))
}

func (r *registry) register(meta Metadata) error {
	key := Normalize(string(meta.Key))
	if key == "" {
		return fmt.Errorf("doktype key is required")
	}
	if meta.Value <= 0 {
		return fmt.Errorf("doktype %s: value must be positive", key)
	}
	meta.Key = key

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[key]; exists {
		return fmt.Errorf("doktype %s already registered", key)
	}
	if other, exists := r.byValue[meta.Value]; exists {
		return fmt.Errorf("doktype value %d already used by %s", meta.Value, other)
	}
	r.kinds[key] = meta
	r.byValue[meta.Value] = key
	return nil
}

func (r *registry) resolve(key Kind) (Metadata, bool) {
	normalized := Normalize(string(key))
	if normalized == "" {
		return Metadata{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.kinds[normalized]
	return meta, ok
}

func (r *registry) list() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.kinds) == 0 {
		return nil
	}

	result := make([]Metadata, 0, len(r.kinds))
	for _, meta := range r.kinds {
		result = append(result, meta)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Value < result[j].Value
	})
	return result
}

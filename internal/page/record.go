// Package page 提供只读的页面树：页面记录、按 id 查询、子页面排序与 root line 计算。
// 页面树在启动阶段从 YAML 场景文件构建一次，之后所有请求共享同一实例。
package page

import (
	"fmt"
	"strings"

	"github.com/any-hub/page-redirect/internal/doktype"
)

// ShortcutMode 描述 shortcut 页面的目标选择方式。
type ShortcutMode string

const (
	// ShortcutModePage 跳转到 Shortcut 字段指定的页面，未指定时等同 first-subpage。
	ShortcutModePage         ShortcutMode = "page"
	ShortcutModeFirstSubpage ShortcutMode = "first-subpage"
	ShortcutModeParent       ShortcutMode = "parent"
)

// Record 是页面的语义视图，字段名与 YAML 场景文件一一对应。
type Record struct {
	ID       int          `yaml:"id" json:"id"`
	ParentID int          `yaml:"parent" json:"parent"`
	DocType  doktype.Kind `yaml:"doktype" json:"doktype"`
	Title    string       `yaml:"title" json:"title"`
	Slug     string       `yaml:"slug" json:"slug"`
	Sorting  int          `yaml:"sorting" json:"sorting"`
	Hidden   bool         `yaml:"hidden" json:"hidden"`

	// URL 仅对 link 类型有效，保存原始外链（可以是相对路径或邮箱）。
	URL          string `yaml:"url" json:"url,omitempty"`
	RedirectCode int    `yaml:"redirectCode" json:"redirect_code"`

	Shortcut     int          `yaml:"shortcut" json:"shortcut,omitempty"`
	ShortcutMode ShortcutMode `yaml:"shortcutMode" json:"shortcut_mode,omitempty"`

	MountPageID  int  `yaml:"mountPage" json:"mount_page,omitempty"`
	MountOverlay bool `yaml:"mountOverlay" json:"mount_overlay,omitempty"`
}

// Is 判断页面是否属于指定类型。
func (r Record) Is(kind doktype.Kind) bool {
	return doktype.Normalize(string(r.DocType)) == kind
}

// EffectiveShortcutMode 返回标准化后的 shortcut 模式，空值视为 page。
func (r Record) EffectiveShortcutMode() ShortcutMode {
	mode := ShortcutMode(strings.ToLower(strings.TrimSpace(string(r.ShortcutMode))))
	if mode == "" {
		return ShortcutModePage
	}
	return mode
}

// LogFields 输出记录的原始字段，供无法解析外链等场景的错误日志使用。
func (r Record) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"uid":           r.ID,
		"pid":           r.ParentID,
		"doktype":       string(r.DocType),
		"title":         r.Title,
		"slug":          r.Slug,
		"url":           r.URL,
		"redirect_code": r.RedirectCode,
	}
}

func (r Record) String() string {
	return fmt.Sprintf("page[%d:%s]", r.ID, r.DocType)
}

package page

import (
	"fmt"
	"sort"

	"github.com/any-hub/page-redirect/internal/doktype"
)

// Repository 是页面树的只读查询接口，路由与目标解析只依赖它，方便在测试中注入假实现。
type Repository interface {
	Lookup(id int) (Record, bool)
	Visible(id int) (Record, error)
	Children(id int) []Record
	FirstChild(id int) (Record, bool)
	RootLine(id int) []int
	Records() []Record
}

var _ Repository = (*Tree)(nil)

// Tree 是内存中的只读页面树，构建完成后可被并发读取。
type Tree struct {
	pages    map[int]Record
	children map[int][]int
}

// NewTree 校验并索引页面记录。任何非法记录都会使构建失败，保证下游拿到的数据结构良好。
func NewTree(records []Record) (*Tree, error) {
	t := &Tree{
		pages:    make(map[int]Record, len(records)),
		children: make(map[int][]int),
	}
	for _, rec := range records {
		rec.DocType = doktype.Normalize(string(rec.DocType))
		if rec.DocType == "" {
			rec.DocType = doktype.KindDefault
		}
		if err := validateRecord(rec); err != nil {
			return nil, err
		}
		if _, exists := t.pages[rec.ID]; exists {
			return nil, newFieldError(rec.ID, "ID", "重复")
		}
		t.pages[rec.ID] = rec
	}

	for id, rec := range t.pages {
		if rec.ParentID == 0 {
			continue
		}
		if _, ok := t.pages[rec.ParentID]; !ok {
			return nil, newFieldError(id, "ParentID", fmt.Sprintf("父页面 %d 不存在", rec.ParentID))
		}
		t.children[rec.ParentID] = append(t.children[rec.ParentID], id)
	}
	for parent := range t.children {
		ids := t.children[parent]
		sort.Slice(ids, func(i, j int) bool {
			a, b := t.pages[ids[i]], t.pages[ids[j]]
			if a.Sorting != b.Sorting {
				return a.Sorting < b.Sorting
			}
			return a.ID < b.ID
		})
	}
	if err := t.detectCycles(); err != nil {
		return nil, err
	}
	return t, nil
}

func validateRecord(rec Record) error {
	if rec.ID <= 0 {
		return newFieldError(rec.ID, "ID", "必须大于 0")
	}
	if rec.ParentID < 0 {
		return newFieldError(rec.ID, "ParentID", "不能为负数")
	}
	if rec.ParentID == rec.ID {
		return newFieldError(rec.ID, "ParentID", "不能指向自身")
	}
	if _, ok := doktype.Resolve(rec.DocType); !ok {
		return newFieldError(rec.ID, "DocType", fmt.Sprintf("未注册类型: %s", rec.DocType))
	}
	if !doktype.ValidRedirectCode(rec.RedirectCode) {
		return newFieldError(rec.ID, "RedirectCode", "仅支持 0|301|302|303|307|308")
	}
	switch rec.EffectiveShortcutMode() {
	case ShortcutModePage, ShortcutModeFirstSubpage, ShortcutModeParent:
	default:
		return newFieldError(rec.ID, "ShortcutMode", "仅支持 page|first-subpage|parent")
	}
	if rec.Shortcut < 0 || rec.MountPageID < 0 {
		return newFieldError(rec.ID, "Shortcut/MountPage", "不能为负数")
	}
	return nil
}

func (t *Tree) detectCycles() error {
	for id := range t.pages {
		seen := map[int]struct{}{}
		current := id
		for current != 0 {
			if _, loop := seen[current]; loop {
				return newFieldError(id, "ParentID", "父子关系存在环")
			}
			seen[current] = struct{}{}
			current = t.pages[current].ParentID
		}
	}
	return nil
}

// Lookup 返回页面记录，包括隐藏页面；调用方自行决定是否对外可见。
func (t *Tree) Lookup(id int) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	rec, ok := t.pages[id]
	return rec, ok
}

// Visible 返回存在且未隐藏的页面。
func (t *Tree) Visible(id int) (Record, error) {
	rec, ok := t.Lookup(id)
	if !ok || rec.Hidden {
		return Record{}, fmt.Errorf("page %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

// Children 按 sorting 顺序返回可见子页面。
func (t *Tree) Children(id int) []Record {
	if t == nil {
		return nil
	}
	ids := t.children[id]
	result := make([]Record, 0, len(ids))
	for _, childID := range ids {
		if rec := t.pages[childID]; !rec.Hidden {
			result = append(result, rec)
		}
	}
	return result
}

// FirstChild 返回第一个可见子页面，spacer/sysfolder 不计入。
func (t *Tree) FirstChild(id int) (Record, bool) {
	for _, child := range t.Children(id) {
		if meta, ok := doktype.Resolve(child.DocType); ok && (meta.Renderable || meta.Redirects()) {
			return child, true
		}
	}
	return Record{}, false
}

// RootLine 返回从页面自身到树根的 id 列表。
func (t *Tree) RootLine(id int) []int {
	var line []int
	current := id
	for current != 0 {
		rec, ok := t.Lookup(current)
		if !ok {
			break
		}
		line = append(line, rec.ID)
		current = rec.ParentID
	}
	return line
}

// Len 返回页面数量，供诊断输出使用。
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pages)
}

// Records 按 id 升序返回全部页面（含隐藏页面），供建立 slug 索引等启动期计算使用。
func (t *Tree) Records() []Record {
	if t == nil {
		return nil
	}
	result := make([]Record, 0, len(t.pages))
	for _, rec := range t.pages {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

package page

import (
	"errors"
	"fmt"
)

// ErrNotFound 表示页面不存在或已隐藏。
var ErrNotFound = errors.New("page not found")

// FieldError 指出页面树中具体某条记录的非法字段。
type FieldError struct {
	PageID int
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("Page[%d].%s: %s", e.PageID, e.Field, e.Reason)
}

func newFieldError(id int, field, reason string) error {
	return FieldError{PageID: id, Field: field, Reason: reason}
}

package doktype

// Kind 是页面类型的稳定键值，写入页面树 YAML 与诊断输出。
type Kind string

const (
	KindDefault    Kind = "default"
	KindLink       Kind = "link"
	KindShortcut   Kind = "shortcut"
	KindMountPoint Kind = "mountpoint"
	KindSpacer     Kind = "spacer"
	KindSysFolder  Kind = "sysfolder"
)

// Metadata 记录一个页面类型的静态信息，供页面树校验、渲染和诊断端使用。
type Metadata struct {
	Key   Kind
	Value int
	// Description 仅用于诊断输出。
	Description string
	// DefaultRedirectCode 为 0 表示该类型本身不会触发跳转。
	DefaultRedirectCode int
	Renderable          bool
}

// Redirects 表示该类型是否存在默认跳转语义。
func (m Metadata) Redirects() bool {
	return m.DefaultRedirectCode > 0
}

package doktype

// 内置页面类型，数值与常见 CMS 的 doktype 保持一致，便于迁移已有页面树。
func init() {
	MustRegister(Metadata{
		Key:         KindDefault,
		Value:       1,
		Description: "Standard page rendered by the frontend",
		Renderable:  true,
	})
	MustRegister(Metadata{
		Key:                 KindLink,
		Value:               3,
		Description:         "External URL, redirects to the configured url field",
		DefaultRedirectCode: 303,
	})
	MustRegister(Metadata{
		Key:                 KindShortcut,
		Value:               4,
		Description:         "Shortcut to another page, first subpage or parent page",
		DefaultRedirectCode: 307,
	})
	MustRegister(Metadata{
		Key:                 KindMountPoint,
		Value:               7,
		Description:         "Mount point reusing another subtree, overlay mode redirects to the mounted page",
		DefaultRedirectCode: 307,
		Renderable:          true,
	})
	MustRegister(Metadata{
		Key:         KindSpacer,
		Value:       199,
		Description: "Menu separator, never rendered",
	})
	MustRegister(Metadata{
		Key:         KindSysFolder,
		Value:       254,
		Description: "Storage folder, never rendered",
	})
}

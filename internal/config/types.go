package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// GlobalConfig 描述全局运行时行为，所有站点共享同一份参数。
type GlobalConfig struct {
	ListenPort    int    `mapstructure:"ListenPort"`
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`

	// ExposeRedirectInformation 为 true 时 X-Redirect-By 附带页面 id。
	ExposeRedirectInformation bool `mapstructure:"ExposeRedirectInformation"`
	// DisablePageExternalURL 关闭外链页面跳转，交给渲染层处理。
	DisablePageExternalURL bool `mapstructure:"DisablePageExternalURL"`
	// ErrorPages 选择外链无法解析时的错误页构建器（none / page-not-found）。
	ErrorPages string `mapstructure:"ErrorPages"`
	// PagesFile 是页面树 YAML 文件，相对路径基于配置文件所在目录。
	PagesFile string `mapstructure:"PagesFile"`

	ReadTimeout  Duration `mapstructure:"ReadTimeout"`
	WriteTimeout Duration `mapstructure:"WriteTimeout"`
}

// SiteConfig 描述一个站点：访问域名来自 Base，页面树入口为 RootPageID。
type SiteConfig struct {
	Name       string `mapstructure:"Name"`
	Base       string `mapstructure:"Base"`
	RootPageID int    `mapstructure:"RootPageID"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Sites  []SiteConfig `mapstructure:"Site"`
}

// BaseURL 返回带结尾斜杠的站点地址，作为相对链接的前缀。
func (s SiteConfig) BaseURL() string {
	base := strings.TrimSpace(s.Base)
	if base == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// SiteSummaries 返回所有站点的摘要，例如 website-local:https://website.local/。
func SiteSummaries(sites []SiteConfig) []string {
	if len(sites) == 0 {
		return nil
	}
	result := make([]string, len(sites))
	for i, site := range sites {
		result[i] = fmt.Sprintf("%s:%s", site.Name, site.BaseURL())
	}
	return result
}

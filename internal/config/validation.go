package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/errorpage"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", fmt.Sprintf("无法识别: %s", g.LogLevel))
	}
	if _, ok := errorpage.Fetch(g.ErrorPages); !ok {
		return newFieldError("Global.ErrorPages", fmt.Sprintf("未注册错误页: %s", g.ErrorPages))
	}
	if strings.TrimSpace(g.PagesFile) == "" {
		return newFieldError("Global.PagesFile", "不能为空")
	}
	if g.ReadTimeout.DurationValue() < 0 || g.WriteTimeout.DurationValue() < 0 {
		return newFieldError("Global.ReadTimeout/WriteTimeout", "不能为负数")
	}

	if len(c.Sites) == 0 {
		return errors.New("至少需要配置一个 Site")
	}

	seenNames := map[string]struct{}{}
	seenHosts := map[string]string{}
	for i := range c.Sites {
		site := &c.Sites[i]
		if site.Name == "" {
			return newFieldError("Site[].Name", "不能为空")
		}
		if _, exists := seenNames[site.Name]; exists {
			return newFieldError(siteField(site.Name, "Name"), "重复")
		}
		seenNames[site.Name] = struct{}{}

		host, err := validateBase(site.Base)
		if err != nil {
			return fmt.Errorf("%s: %w", siteField(site.Name, "Base"), err)
		}
		if other, exists := seenHosts[host]; exists {
			return newFieldError(siteField(site.Name, "Base"), fmt.Sprintf("域名与 %s 重复", other))
		}
		seenHosts[host] = site.Name

		if site.RootPageID <= 0 {
			return newFieldError(siteField(site.Name, "RootPageID"), "必须大于 0")
		}
	}

	return nil
}

func validateBase(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("缺少站点地址")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("仅支持 http/https，站点: %s", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("站点缺少 Host: %s", raw)
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("站点地址不允许包含查询或锚点: %s", raw)
	}
	return strings.ToLower(parsed.Hostname()), nil
}

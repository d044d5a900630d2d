package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFailsWithMissingFields(t *testing.T) {
	if _, err := Load(testConfigPath(t, "missing.toml")); err == nil {
		t.Fatalf("缺失字段的配置应返回错误")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	cfg := `
LogLevel = "info"
ReadTimeout = "boom"

[[Site]]
Name = "website-local"
Base = "https://website.local/"
RootPageID = 1000
`
	path := writeTempConfig(t, cfg)
	if _, err := Load(path); err == nil {
		t.Fatalf("无效 Duration 应失败")
	}
}

func TestLoadAcceptsNumericSeconds(t *testing.T) {
	cfg := `
ReadTimeout = 3
ErrorPages = "NONE"
PagesFile = "/srv/pages.yaml"

[[Site]]
Name = "website-local"
Base = "https://website.local/"
RootPageID = 1000
`
	path := writeTempConfig(t, cfg)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	if loaded.Global.ReadTimeout.DurationValue() != 3*time.Second {
		t.Fatalf("纯数字应按秒解析, got %s", loaded.Global.ReadTimeout.DurationValue())
	}
	if loaded.Global.ErrorPages != "none" {
		t.Fatalf("ErrorPages 应被规范化为小写, got %s", loaded.Global.ErrorPages)
	}
	if loaded.Global.PagesFile != "/srv/pages.yaml" {
		t.Fatalf("绝对路径不应被改写, got %s", loaded.Global.PagesFile)
	}
}

func TestLoadResolvesPagesFileNextToConfig(t *testing.T) {
	cfg := `
[[Site]]
Name = "website-local"
Base = "https://website.local/"
RootPageID = 1000
`
	path := writeTempConfig(t, cfg)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	want := filepath.Join(filepath.Dir(path), "pages.yaml")
	if loaded.Global.PagesFile != want {
		t.Fatalf("PagesFile 默认应位于配置目录: got %s want %s", loaded.Global.PagesFile, want)
	}
	if loaded.Global.ErrorPages != "page-not-found" {
		t.Fatalf("ErrorPages 默认值错误: %s", loaded.Global.ErrorPages)
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90")); err != nil || d.DurationValue() != 90*time.Second {
		t.Fatalf("纯秒值解析失败: %v %s", err, d.DurationValue())
	}
	if err := d.UnmarshalText([]byte("1m")); err != nil || d.DurationValue() != time.Minute {
		t.Fatalf("Duration 字符串解析失败: %v", err)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Fatalf("非法值应报错")
	}
}

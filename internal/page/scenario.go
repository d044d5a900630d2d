package page

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario 是页面树 YAML 文件的顶层结构：
//
//	pages:
//	  - id: 1000
//	    title: ACME Root
//	    doktype: shortcut
//	    shortcutMode: first-subpage
type Scenario struct {
	Pages []Record `yaml:"pages"`
}

// LoadScenario 读取 YAML 场景文件并构建页面树。
func LoadScenario(path string) (*Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取页面树失败: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario 解析 YAML 内容，未知字段视为错误以便尽早暴露拼写问题。
func ParseScenario(raw []byte) (*Tree, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("解析页面树失败: %w", err)
	}
	if len(scenario.Pages) == 0 {
		return nil, fmt.Errorf("页面树为空")
	}
	return NewTree(scenario.Pages)
}

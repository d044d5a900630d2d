package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供站点/域名/页面字段，供页面请求日志复用。
func RequestFields(site, domain string, pageID int, doktype string) logrus.Fields {
	return logrus.Fields{
		"site":    site,
		"domain":  domain,
		"page_id": pageID,
		"doktype": doktype,
	}
}

// DecisionFields 记录跳转决策结果；location 为空时不输出。
func DecisionFields(outcome string, status int, location string) logrus.Fields {
	fields := logrus.Fields{
		"outcome": outcome,
		"status":  status,
	}
	if location != "" {
		fields["location"] = location
	}
	return fields
}

// Merge 将多组字段合并，后者覆盖前者。
func Merge(groups ...logrus.Fields) logrus.Fields {
	merged := logrus.Fields{}
	for _, group := range groups {
		for key, value := range group {
			merged[key] = value
		}
	}
	return merged
}

// Package frontend 将请求映射到页面（id 参数或 slug），跟随 shortcut/mount point
// 生成目标地址，并把跳转决策结果写回 Fiber 响应。
package frontend

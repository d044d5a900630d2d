// Package doktype 聚合页面类型（doktype）的元数据，并提供统一的注册入口。
//
// 新增页面类型时需要：
//   1. 在 init() 中通过 MustRegister 注册 Metadata；
//   2. 为需要跳转的类型声明 DefaultRedirectCode，未声明时视为不跳转；
//   3. 声明 Renderable，渲染层据此决定直接输出页面还是返回 404。
//
// 该包同时负责配置校验（页面树加载时检查 doktype 与 redirect_code）以及诊断端的对外查询能力。
package doktype

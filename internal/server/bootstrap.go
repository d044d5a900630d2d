package server

import (
	"github.com/gofiber/fiber/v3"
)

// fiberConfig 汇总 Fiber 运行参数；超时为 0 时沿用 Fiber 默认（不限制）。
func fiberConfig(opts AppOptions) fiber.Config {
	return fiber.Config{
		CaseSensitive: true,
		ReadTimeout:   opts.ReadTimeout,
		WriteTimeout:  opts.WriteTimeout,
		AppName:       "page-redirect",
	}
}

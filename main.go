package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/page-redirect/internal/config"
	"github.com/any-hub/page-redirect/internal/frontend"
	"github.com/any-hub/page-redirect/internal/logging"
	"github.com/any-hub/page-redirect/internal/page"
	"github.com/any-hub/page-redirect/internal/server"
	"github.com/any-hub/page-redirect/internal/server/routes"
	"github.com/any-hub/page-redirect/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	// 页面树属于配置的一部分，check-config 同样需要校验
	tree, err := loadPageTree(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "加载页面树失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["sites"] = config.SiteSummaries(cfg.Sites)
		fields["pages"] = tree.Len()
		fields["error_pages"] = cfg.Global.ErrorPages
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// CLI 启动遵循“配置 → 页面树 → SiteRegistry → 决策链 → Fiber server”顺序，
	// 所有请求共享同一份只读页面树与站点映射。
	app, err := buildApp(cfg, tree, logger)
	if err != nil {
		fmt.Fprintf(stdErr, "构建 HTTP 服务失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["sites"] = config.SiteSummaries(cfg.Sites)
	fields["pages"] = tree.Len()
	fields["listen_port"] = cfg.Global.ListenPort
	fields["expose_redirect_information"] = cfg.Global.ExposeRedirectInformation
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(app, cfg.Global.ListenPort, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("page-redirect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 PAGE_REDIRECT_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置与页面树后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("PAGE_REDIRECT_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

// loadPageTree 读取页面树，并确认每个站点的根页面存在且可见。
func loadPageTree(cfg *config.Config) (*page.Tree, error) {
	tree, err := page.LoadScenario(cfg.Global.PagesFile)
	if err != nil {
		return nil, err
	}
	for _, site := range cfg.Sites {
		if _, err := tree.Visible(site.RootPageID); err != nil {
			return nil, fmt.Errorf("site %s: root page %d: %w", site.Name, site.RootPageID, err)
		}
	}
	return tree, nil
}

func buildApp(cfg *config.Config, tree *page.Tree, logger *logrus.Logger) (*fiber.App, error) {
	registry, err := server.NewSiteRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("构建站点注册表失败: %w", err)
	}

	handler, err := frontend.Build(cfg, tree, registry, logger)
	if err != nil {
		return nil, err
	}

	app, err := server.NewApp(server.AppOptions{
		Logger:       logger,
		Registry:     registry,
		Pages:        handler,
		ListenPort:   cfg.Global.ListenPort,
		ReadTimeout:  cfg.Global.ReadTimeout.DurationValue(),
		WriteTimeout: cfg.Global.WriteTimeout.DurationValue(),
	})
	if err != nil {
		return nil, err
	}
	routes.RegisterDiagnosticsRoutes(app, registry, routes.DiagnosticsOptions{
		ErrorPages: cfg.Global.ErrorPages,
		PageCount:  tree.Len(),
	})
	return app, nil
}

func startHTTPServer(app *fiber.App, port int, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}

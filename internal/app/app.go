// Package app 负责应用级编排：加载配置 -> 初始化依赖 -> 启动 HTTP 服务。
package app

import (
	"context"
	"fmt"

	qcfg "quantmon/internal/config"
	"quantmon/internal/logger"
	"quantmon/internal/transport/http/api"

	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg    *qcfg.Config
	server *api.Server
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *qcfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return build(cfg)
}

// Run 启动服务并阻塞，ctx 取消时优雅退出。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

// Server 暴露 HTTP 服务实例，测试用。
func (a *App) Server() *api.Server {
	if a == nil {
		return nil
	}
	return a.server
}

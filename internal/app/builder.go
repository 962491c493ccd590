package app

import (
	"fmt"
	"time"

	"quantmon/internal/agent"
	qcfg "quantmon/internal/config"
	"quantmon/internal/data"
	"quantmon/internal/logger"
	"quantmon/internal/pkg/circuit"
	"quantmon/internal/pkg/retry"
	"quantmon/internal/strategy"
	"quantmon/internal/transport/http/api"
)

// build 按依赖顺序组装服务图。所有组件显式构造、按引用注入，不设包级单例。
func build(cfg *qcfg.Config) (*App, error) {
	var store *data.Store
	if cfg.Data.StoreEnabled {
		s, err := data.NewStore(cfg.Data.StorePath)
		if err != nil {
			return nil, fmt.Errorf("初始化行情库失败: %w", err)
		}
		store = s
		logger.Infof("行情落库已启用: %s", cfg.Data.StorePath)
	}

	source := data.NewEastMoneySource(cfg.Data.VendorBaseURL, time.Duration(cfg.Data.TimeoutSeconds)*time.Second)
	breaker := circuit.NewBreaker(source.Name(), cfg.Data.BreakerThreshold, time.Duration(cfg.Data.BreakerCooldownS)*time.Second)
	pipeline, err := data.NewPipeline(data.PipelineConfig{
		Source: source,
		Retry: retry.Policy{
			MaxAttempts: cfg.Data.RetryMaxAttempts,
			BaseDelay:   time.Duration(cfg.Data.RetryBaseSeconds * float64(time.Second)),
			MaxDelay:    time.Duration(cfg.Data.RetryMaxSeconds * float64(time.Second)),
			Multiplier:  2,
		},
		RateLimitPerMin: cfg.Data.RateLimitPerMin,
		MaxConcurrent:   cfg.Data.MaxConcurrent,
		Breaker:         breaker,
		Store:           store,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化数据管线失败: %w", err)
	}

	registry := strategy.Default()

	var profiles *strategy.ProfileRegistry
	if cfg.Strategy.ProfilesPath != "" {
		p, err := strategy.NewProfileRegistry(cfg.Strategy.ProfilesPath)
		if err != nil {
			logger.Warnf("回测预设加载失败（%s），预设接口不可用: %v", cfg.Strategy.ProfilesPath, err)
		} else {
			profiles = p
		}
	}

	server, err := api.NewServer(api.ServerConfig{
		Addr:           cfg.App.HTTPAddr,
		Pipeline:       pipeline,
		Registry:       registry,
		Profiles:       profiles,
		Translator:     agent.MockTranslator{},
		Store:          store,
		InitialCapital: cfg.Backtest.InitialCapital,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 HTTP 服务失败: %w", err)
	}

	return &App{cfg: cfg, server: server}, nil
}

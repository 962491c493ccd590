// Package api 提供 HTTP 接口：回测触发、批量行情、预设与图表。
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quantmon/internal/agent"
	"quantmon/internal/data"
	"quantmon/internal/logger"
	"quantmon/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ServerConfig 配置 HTTP 服务。
type ServerConfig struct {
	Addr           string
	Pipeline       *data.Pipeline
	Registry       *strategy.Registry
	Profiles       *strategy.ProfileRegistry
	Translator     agent.Translator
	Store          *data.Store // 可为 nil：candles 查询接口返回 503
	InitialCapital float64
}

// Server gin HTTP 服务。
type Server struct {
	addr           string
	pipeline       *data.Pipeline
	registry       *strategy.Registry
	profiles       *strategy.ProfileRegistry
	translator     agent.Translator
	store          *data.Store
	initialCapital float64
	schema         *jsonschema.Schema
	router         *gin.Engine
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("pipeline 不能为空")
	}
	if cfg.Registry == nil {
		return nil, errors.New("strategy registry 不能为空")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	schema, err := compileBacktestSchema()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	s := &Server{
		addr:           cfg.Addr,
		pipeline:       cfg.Pipeline,
		registry:       cfg.Registry,
		profiles:       cfg.Profiles,
		translator:     cfg.Translator,
		store:          cfg.Store,
		initialCapital: cfg.InitialCapital,
		schema:         schema,
		router:         router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	v1 := s.router.Group("/api/v1")
	v1.POST("/backtest", s.handleBacktest)
	v1.POST("/backtest/chart", s.handleBacktestChart)
	v1.POST("/backtest/profile", s.handleBacktestProfile)
	v1.GET("/strategies", s.handleStrategies)
	v1.GET("/profiles", s.handleProfiles)
	v1.POST("/agent/query", s.handleAgentQuery)
	v1.POST("/data/multi", s.handleMultiFetch)
	v1.GET("/data/candles", s.handleCandles)
}

// requestID 为每个请求注入 uuid，写入响应头并带进日志。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Start 启动 HTTP 服务，阻塞直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP 服务监听 %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Router 暴露底层路由，测试用。
func (s *Server) Router() http.Handler {
	return s.router
}

package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"quantmon/internal/engine"
	"quantmon/internal/logger"
	"quantmon/internal/strategy"
	"quantmon/internal/visual"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Distributed Quant Monitoring and Backtesting System"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": s.registry.Names()})
}

func (s *Server) handleProfiles(c *gin.Context) {
	if s.profiles == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "预设未启用"})
		return
	}
	snap := s.profiles.Snapshot()
	c.JSON(http.StatusOK, gin.H{"version": snap.Version, "profiles": snap.Profiles})
}

func (s *Server) handleBacktest(c *gin.Context) {
	req, ok := s.bindBacktestRequest(c)
	if !ok {
		return
	}
	result, status, errMsg := s.runBacktest(c, req)
	if errMsg != "" {
		c.JSON(status, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleBacktestChart(c *gin.Context) {
	req, ok := s.bindBacktestRequest(c)
	if !ok {
		return
	}
	result, status, errMsg := s.runBacktest(c, req)
	if errMsg != "" {
		c.JSON(status, gin.H{"error": errMsg})
		return
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	title := req.StrategyName + " " + req.Symbol
	if err := visual.RenderEquityCurve(c.Writer, title, result.EquityCurve); err != nil {
		logger.Errorf("渲染资金曲线失败: %v", err)
	}
}

func (s *Server) handleBacktestProfile(c *gin.Context) {
	if s.profiles == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "预设未启用"})
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, ok := s.profiles.Profile(req.Profile)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "预设不存在: " + req.Profile})
		return
	}
	result, status, errMsg := s.runBacktest(c, backtestRequestFromProfile(profile))
	if errMsg != "" {
		c.JSON(status, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile.Name, "result": result})
}

func (s *Server) handleAgentQuery(c *gin.Context) {
	if s.translator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "翻译服务未启用"})
		return
	}
	var req AgentQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Infof("收到自然语言查询: %s", req.Query)
	parsed, err := s.translator.Translate(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "解析查询失败: " + err.Error()})
		return
	}
	result, status, errMsg := s.runBacktest(c, BacktestRequest{
		Symbol:         parsed.Symbol,
		StartDate:      parsed.StartDate,
		EndDate:        parsed.EndDate,
		InitialCapital: parsed.InitialCapital,
		StrategyName:   parsed.StrategyName,
		Parameters:     parsed.Parameters,
	})
	if errMsg != "" {
		c.JSON(status, gin.H{"error": errMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"parsed_parameters": parsed,
		"analysis":          "已按解析出的参数执行 " + parsed.StrategyName + " 策略回测。",
		"result":            result,
	})
}

func (s *Server) handleMultiFetch(c *gin.Context) {
	var req MultiFetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols 不能为空"})
		return
	}
	results := s.pipeline.FetchMulti(c.Request.Context(), req.Symbols, req.StartDate, req.EndDate)
	slots := make([]MultiFetchSlot, len(results))
	for i, r := range results {
		slots[i].Symbol = r.Symbol
		if r.Err != nil {
			slots[i].Error = r.Err.Error()
			continue
		}
		slots[i].Bars = r.Series
		slots[i].Count = len(r.Series)
	}
	c.JSON(http.StatusOK, gin.H{"results": slots})
}

func (s *Server) handleCandles(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "行情落库未启用"})
		return
	}
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol 必填"})
		return
	}
	adjust := c.DefaultQuery("adjust", "qfq")
	start, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date 非法"})
		return
	}
	end, err := parseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date 非法"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit 非法"})
		return
	}
	series, err := s.store.QuerySeries(c.Request.Context(), symbol, adjust, start, end, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candles": series, "count": len(series)})
}

func (s *Server) bindBacktestRequest(c *gin.Context) (BacktestRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return BacktestRequest{}, false
	}
	var req BacktestRequest
	if err := validateAndBind(s.schema, body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return BacktestRequest{}, false
	}
	return req, true
}

// runBacktest 完成拉取-信号-指标链路；errMsg 非空时 status 为对应 HTTP 状态码。
func (s *Server) runBacktest(c *gin.Context, req BacktestRequest) (*engine.Result, int, string) {
	strat, err := s.registry.Get(req.StrategyName)
	if err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}
	logger.Infof("收到回测请求 [%s]: %s %s~%s 策略=%s",
		c.GetString("request_id"), req.Symbol, req.StartDate, req.EndDate, req.StrategyName)

	series, err := s.pipeline.FetchDaily(c.Request.Context(), req.Symbol, req.StartDate, req.EndDate, req.Adjust)
	if err != nil {
		logger.Errorf("回测执行失败: %v", err)
		return nil, http.StatusInternalServerError, err.Error()
	}
	if len(series) == 0 {
		return nil, http.StatusNotFound, "No data found for the given parameters"
	}

	capital := req.InitialCapital
	if capital <= 0 {
		capital = s.initialCapital
	}
	tester := engine.New(series, capital)
	result, err := tester.Run(strat, req.Parameters)
	if err != nil {
		logger.Errorf("回测执行失败: %v", err)
		return nil, http.StatusInternalServerError, err.Error()
	}
	return result, http.StatusOK, ""
}

func backtestRequestFromProfile(p strategy.Profile) BacktestRequest {
	return BacktestRequest{
		Symbol:         p.Symbol,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Adjust:         p.Adjust,
		InitialCapital: p.InitialCapital,
		StrategyName:   p.Strategy,
		Parameters:     p.Params,
	}
}

func parseDateQuery(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("20060102", raw, time.UTC)
}

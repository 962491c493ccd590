package data

import (
	"context"
	"fmt"
	"sync"

	"quantmon/internal/logger"
	"quantmon/internal/market"
	"quantmon/internal/pkg/circuit"
	"quantmon/internal/pkg/retry"
	"quantmon/internal/pkg/symbol"

	"golang.org/x/time/rate"
)

// PipelineConfig 配置 Pipeline。
type PipelineConfig struct {
	Source          Source
	Retry           retry.Policy
	RateLimitPerMin int
	MaxConcurrent   int
	Breaker         *circuit.Breaker
	Store           *Store // 可为 nil：不落库
}

// Pipeline 负责拉取并规范化日线行情。显式构造、按引用传递，不提供包级单例。
type Pipeline struct {
	source  Source
	policy  retry.Policy
	limiter *rate.Limiter
	breaker *circuit.Breaker
	store   *Store
	sem     chan struct{}
}

func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("source 不能为空")
	}
	perMin := cfg.RateLimitPerMin
	if perMin <= 0 {
		perMin = 120
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	policy := cfg.Retry
	if policy.MaxAttempts <= 0 {
		policy = retry.Default()
	}
	return &Pipeline{
		source:  cfg.Source,
		policy:  policy,
		limiter: rate.NewLimiter(rate.Limit(float64(perMin)/60.0), maxConcurrent),
		breaker: cfg.Breaker,
		store:   cfg.Store,
		sem:     make(chan struct{}, maxConcurrent),
	}, nil
}

// FetchDaily 拉取单只股票的日线序列。symbol 允许携带交易所前缀（如 sh600000）。
// 行情源返回空数据时返回空序列而非错误；重试耗尽后原样返回最后一次的错误。
func (p *Pipeline) FetchDaily(ctx context.Context, sym, start, end, adjust string) (market.Series, error) {
	code := symbol.Clean(sym)
	if code == "" {
		return nil, fmt.Errorf("无效的股票代码: %s", sym)
	}
	logger.Infof("拉取 %s 日线 [%s, %s] 复权=%q", code, start, end, adjust)
	req := DailyRequest{Code: code, Start: start, End: end, Adjust: adjust}

	var table RawTable
	err := p.policy.Do(ctx, func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		if p.breaker != nil && !p.breaker.Allow() {
			return circuit.ErrOpen
		}
		tbl, err := p.fetchOnce(ctx, req)
		if err != nil {
			if p.breaker != nil {
				p.breaker.RecordFailure()
			}
			logger.Warnf("拉取 %s 失败: %v", code, err)
			return err
		}
		if p.breaker != nil {
			p.breaker.RecordSuccess()
		}
		table = tbl
		return nil
	})
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		logger.Warnf("行情源 %s 对 %s 返回空数据", p.source.Name(), code)
		return market.Series{}, nil
	}
	series, err := Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("规范化 %s 行情失败: %w", code, err)
	}
	if p.store != nil {
		if _, err := p.store.SaveSeries(ctx, code, adjust, series); err != nil {
			logger.Warnf("落库 %s 行情失败（不影响本次结果）: %v", code, err)
		}
	}
	return series, nil
}

// Result 是批量拉取中单只股票的结果槽：Series 与 Err 二选一。
type Result struct {
	Symbol string        `json:"symbol"`
	Series market.Series `json:"series,omitempty"`
	Err    error         `json:"-"`
}

// FetchMulti 并发拉取多只股票，返回与输入同序的结果列表。
// 单只股票重试耗尽的失败只占据自己的槽位，不会中断或阻塞其他股票。
func (p *Pipeline) FetchMulti(ctx context.Context, symbols []string, start, end string) []Result {
	results := make([]Result, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		results[i].Symbol = sym
		wg.Add(1)
		go func(slot int, sym string) {
			defer wg.Done()
			select {
			case p.sem <- struct{}{}:
			case <-ctx.Done():
				results[slot].Err = ctx.Err()
				return
			}
			defer func() { <-p.sem }()
			series, err := p.FetchDaily(ctx, sym, start, end, "qfq")
			if err != nil {
				results[slot].Err = err
				return
			}
			results[slot].Series = series
		}(i, sym)
	}
	wg.Wait()
	return results
}

// fetchOnce 在独立 goroutine 中执行行情源调用，调用方取消时立即返回。
func (p *Pipeline) fetchOnce(ctx context.Context, req DailyRequest) (RawTable, error) {
	type outcome struct {
		table RawTable
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		tbl, err := p.source.FetchDaily(ctx, req)
		ch <- outcome{table: tbl, err: err}
	}()
	select {
	case <-ctx.Done():
		return RawTable{}, ctx.Err()
	case out := <-ch:
		return out.table, out.err
	}
}

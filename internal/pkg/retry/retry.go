// Package retry 提供显式的指数退避重试策略。
package retry

import (
	"context"
	"time"
)

// Policy 描述一次重试序列：最大尝试次数、起始等待、等待上限与退避倍数。
// 作为值传递，零值不可用，请从 Default 或配置构造。
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// Default 与原有行为一致：3 次尝试，4s 起步，封顶 10s。
func Default() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 4 * time.Second, MaxDelay: 10 * time.Second, Multiplier: 2}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = 2
	}
	return p
}

// Do 依次执行 fn 直到成功或尝试耗尽。单次尝试不会被打断；
// 尝试之间的等待响应 ctx 取消。耗尽后原样返回最后一次的错误。
func (p Policy) Do(ctx context.Context, fn func() error) error {
	p = p.normalized()
	delay := p.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return lastErr
}

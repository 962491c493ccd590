package strategy

import (
	"fmt"
	"sort"
	"sync"
)

// Registry 策略名到实现的映射。新策略注册即可用，派发方不需要改动。
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

func (r *Registry) Register(name string, s Strategy) error {
	if name == "" || s == nil {
		return fmt.Errorf("策略名与实现都不能为空")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("策略 %s 已注册", name)
	}
	r.strategies[name] = s
	return nil
}

// Get 未注册的名字返回错误，由 HTTP 层在进入回测前拒绝。
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("策略 %s 未实现", name)
	}
	return s, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default 返回内置策略注册表。
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register("SMA", SMACross{})
	_ = r.Register("EMA", EMACross{})
	_ = r.Register("RSI", RSIThreshold{})
	return r
}

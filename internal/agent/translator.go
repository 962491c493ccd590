// Package agent 定义自然语言到回测参数的翻译边界。
// 核心链路不依赖本包，实现可以整体替换。
package agent

import "context"

// TranslatedRequest 翻译产出的回测参数。
type TranslatedRequest struct {
	Symbol         string         `json:"symbol"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	StrategyName   string         `json:"strategy_name"`
	InitialCapital float64        `json:"initial_capital"`
	Parameters     map[string]any `json:"parameters"`
}

// Translator 把一段自由文本翻译成回测参数。
type Translator interface {
	Translate(ctx context.Context, query string) (TranslatedRequest, error)
}

// MockTranslator 占位实现：不接大模型，固定返回
// "用 20 和 50 日均线回测 600000 在 2023 年的表现" 的解析结果。
type MockTranslator struct{}

func (MockTranslator) Translate(ctx context.Context, query string) (TranslatedRequest, error) {
	_ = query
	return TranslatedRequest{
		Symbol:         "600000",
		StartDate:      "20230101",
		EndDate:        "20231231",
		StrategyName:   "SMA",
		InitialCapital: 100000,
		Parameters: map[string]any{
			"short_window": 20,
			"long_window":  50,
		},
	}, nil
}

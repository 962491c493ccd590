package api

// BacktestRequest 手动触发一次回测。
type BacktestRequest struct {
	Symbol         string         `json:"symbol"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
	Adjust         string         `json:"adjust"`
	InitialCapital float64        `json:"initial_capital"`
	StrategyName   string         `json:"strategy_name"`
	Parameters     map[string]any `json:"parameters"`
}

// ProfileRequest 按预设名触发回测。
type ProfileRequest struct {
	Profile string `json:"profile" binding:"required"`
}

// AgentQueryRequest 自然语言查询。
type AgentQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// MultiFetchRequest 批量拉取行情。
type MultiFetchRequest struct {
	Symbols   []string `json:"symbols" binding:"required"`
	StartDate string   `json:"start_date" binding:"required"`
	EndDate   string   `json:"end_date" binding:"required"`
}

// MultiFetchSlot 批量拉取中单只股票的结果：Error 与 Bars 互斥。
type MultiFetchSlot struct {
	Symbol string `json:"symbol"`
	Bars   any    `json:"bars,omitempty"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

package config

// Config 是 quantmon 的主配置载体。
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Data     DataConfig     `mapstructure:"data"`
	Backtest BacktestConfig `mapstructure:"backtest"`
	Strategy StrategyConfig `mapstructure:"strategy"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPAddr string `mapstructure:"http_addr"`
	LogPath  string `mapstructure:"log_path"`
}

// DataConfig 控制行情拉取：数据源地址、限速、重试与本地落库。
type DataConfig struct {
	VendorBaseURL    string  `mapstructure:"vendor_base_url"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	RateLimitPerMin  int     `mapstructure:"rate_limit_per_min"`
	MaxConcurrent    int     `mapstructure:"max_concurrent"`
	RetryMaxAttempts int     `mapstructure:"retry_max_attempts"`
	RetryBaseSeconds float64 `mapstructure:"retry_base_seconds"`
	RetryMaxSeconds  float64 `mapstructure:"retry_max_seconds"`
	BreakerThreshold int     `mapstructure:"breaker_threshold"`
	BreakerCooldownS int     `mapstructure:"breaker_cooldown_seconds"`
	StoreEnabled     bool    `mapstructure:"store_enabled"`
	StorePath        string  `mapstructure:"store_path"`
}

type BacktestConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
}

type StrategyConfig struct {
	ProfilesPath string `mapstructure:"profiles_path"`
}

package config

// 默认值常量
const (
	defaultAppEnv           = "dev"
	defaultAppLogLevel      = "info"
	defaultAppHTTPAddr      = ":8000"
	defaultVendorBaseURL    = "https://push2his.eastmoney.com"
	defaultDataTimeout      = 15
	defaultRatePerMin       = 120
	defaultMaxConcurrent    = 4
	defaultRetryAttempts    = 3
	defaultRetryBaseSeconds = 4.0
	defaultRetryMaxSeconds  = 10.0
	defaultBreakerThreshold = 5
	defaultBreakerCooldown  = 30
	defaultStorePath        = "data/quantmon.db"
	defaultInitialCapital   = 100000.0
	defaultProfilesPath     = "configs/profiles.yaml"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Data.applyDefaults()
	c.Backtest.applyDefaults()
	c.Strategy.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (d *DataConfig) applyDefaults() {
	if d.VendorBaseURL == "" {
		d.VendorBaseURL = defaultVendorBaseURL
	}
	if d.TimeoutSeconds <= 0 {
		d.TimeoutSeconds = defaultDataTimeout
	}
	if d.RateLimitPerMin <= 0 {
		d.RateLimitPerMin = defaultRatePerMin
	}
	if d.MaxConcurrent <= 0 {
		d.MaxConcurrent = defaultMaxConcurrent
	}
	if d.RetryMaxAttempts <= 0 {
		d.RetryMaxAttempts = defaultRetryAttempts
	}
	if d.RetryBaseSeconds <= 0 {
		d.RetryBaseSeconds = defaultRetryBaseSeconds
	}
	if d.RetryMaxSeconds <= 0 {
		d.RetryMaxSeconds = defaultRetryMaxSeconds
	}
	if d.BreakerThreshold <= 0 {
		d.BreakerThreshold = defaultBreakerThreshold
	}
	if d.BreakerCooldownS <= 0 {
		d.BreakerCooldownS = defaultBreakerCooldown
	}
	if d.StorePath == "" {
		d.StorePath = defaultStorePath
	}
}

func (b *BacktestConfig) applyDefaults() {
	if b.InitialCapital <= 0 {
		b.InitialCapital = defaultInitialCapital
	}
}

func (s *StrategyConfig) applyDefaults() {
	if s.ProfilesPath == "" {
		s.ProfilesPath = defaultProfilesPath
	}
}

package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"quantmon/internal/logger"
)

// WatchLogLevel 监听配置文件变更并热更新日志级别。
// 其余字段在进程生命周期内保持启动时的值。
func WatchLogLevel(path string) {
	if path == "" {
		return
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		logger.Warnf("配置监听初始化失败（%s）: %v", path, err)
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		level := v.GetString("app.log_level")
		if level == "" {
			return
		}
		logger.SetLevel(level)
		logger.Infof("配置变更（%s），日志级别已切换为 %s", e.Name, level)
	})
	v.WatchConfig()
}

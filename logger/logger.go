// file: logger/logger.go
package logger

import (
	"log/slog"
	"os"
)

// Setup 初始化全局结构化日志：生产环境 JSON，开发环境文本
func Setup(env string) {
	var handler slog.Handler

	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

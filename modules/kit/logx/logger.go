package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各组件共享的最小日志接口：结构化字段 + ctx 透传（run_id / war_id）。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃全部输出的 Logger，测试和未配置日志时使用。
func Nop() Logger {
	return NewZapLogger(nil)
}

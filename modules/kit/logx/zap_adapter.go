package logx

import (
	"context"

	"BaseWars/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 是 zap 的适配器。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		return &ZapLogger{logger: zap.NewNop()}
	}
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) With(fields ...zap.Field) Logger {
	return &ZapLogger{logger: z.logger.With(fields...)}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	if ctx == nil {
		return z
	}
	l := z.logger
	if rid, ok := tracex.RunIDFrom(ctx); ok {
		l = l.With(zap.String("run_id", rid))
	}
	if wid, ok := tracex.WarIDFrom(ctx); ok {
		l = l.With(zap.String("war_id", wid))
	}
	if qid, ok := tracex.RequestIDFrom(ctx); ok {
		l = l.With(zap.String("request_id", qid))
	}
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

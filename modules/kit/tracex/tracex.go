package tracex

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}
type warIDKey struct{}
type requestIDKey struct{}

// WithRunID 标记一次完整模拟（两座基地从建立到战斗结束）。
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

func RunIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, runIDKey{})
}

// WithWarID 标记一场战斗，死亡事件和战报都按 war_id 归档。
func WithWarID(ctx context.Context, warID string) context.Context {
	return context.WithValue(ctx, warIDKey{}, warID)
}

func WarIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, warIDKey{})
}

// WithRequestID 标记一次 HTTP/WS 请求，只用于访问日志。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey{})
}

func NewID() string {
	return uuid.NewString()
}

func stringFrom(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(key).(string)
	return s, ok && s != ""
}

package logx

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BizLog 是业务拒绝日志的强类型输入。
type BizLog struct {
	Action string
	Reason string
}

// SysLog 是技术错误日志的强类型输入。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason string) BizLog {
	return BizLog{Action: action, Reason: reason}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// ReportAccessWithLoggerContext 记录访问日志：2xx/3xx INFO，4xx WARN，5xx ERROR。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, status int, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := []zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("status", status),
	}
	base = append(base, fields...)
	withCtx := l.WithContext(ctx)
	switch {
	case status >= 500:
		withCtx.Error("access", base...)
	case status >= 400:
		withCtx.Warn("access", base...)
	default:
		withCtx.Info("access", base...)
	}
}

// ReportBizWithLoggerContext 记录业务拒绝：DEBUG、err_type=biz。
// 轮询驱动器会高频产生业务拒绝，所以这里不用 INFO。
func ReportBizWithLoggerContext(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := biz.Action
	if action == "" {
		action = "biz_reject"
	}
	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
	}
	msg := action
	if biz.Reason != "" {
		base = append(base, zap.String("reason", biz.Reason))
		msg = fmt.Sprintf("%s, reason:%s", action, biz.Reason)
	}
	base = append(base, fields...)
	l.WithContext(ctx).Debug(msg, base...)
}

// ReportSysErrorWithLoggerContext 记录技术错误：ERROR、err_type=sys，附带错误码与发生处栈。
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if meta.Code != "" {
		base = append(base, zap.String("error_code", meta.Code))
	}
	if len(meta.CauseChain) != 0 {
		base = append(base, zap.Strings("cause_chain", meta.CauseChain))
	}
	if len(meta.Data) != 0 {
		base = append(base, zap.Any("error_data", meta.Data))
	}
	if meta.Origin != "" {
		base = append(base, zap.String("origin_caller", meta.Origin))
	}
	base = append(base, fields...)
	l.WithContext(ctx).Error(fmt.Sprintf("%s, error:%s", action, meta.Error), base...)
}

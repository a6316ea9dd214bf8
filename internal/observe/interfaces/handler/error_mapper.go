package handler

import (
	"context"
	"errors"

	"BaseWars/internal/shared/transport"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
)

func mapBizCodeToClientCode(code errx.Code) int {
	switch code {
	case CodeBaseUnknown:
		return transport.NotFound
	default:
		return transport.InvalidParam
	}
}

// HandleError 把错误翻译成客户端业务码和提示；技术错误在这里落 ERROR 日志，
// 对外只返回笼统提示。
func HandleError(ctx context.Context, l logx.Logger, action string, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	var xe *errx.Error
	if errors.As(err, &xe) && xe.IsBiz() {
		transport.SetErrorReason(ctx, xe.CodeText())
		logx.ReportBizWithLoggerContext(ctx, l, logx.NewBizLog(action, xe.CodeText()))
		return mapBizCodeToClientCode(xe.Code()), xe.Msg()
	}
	transport.SetErrorReason(ctx, "system_error")
	logx.ReportSysErrorWithLoggerContext(ctx, l, logx.NewSysLog(action, err))
	return transport.SystemError, "服务繁忙"
}

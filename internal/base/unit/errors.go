package unit

import "BaseWars/modules/kit/errx"

const (
	CodeCannotAfford errx.Code = "CANNOT_AFFORD"
	CodePeasantBusy  errx.Code = "PEASANT_BUSY"
	CodeUnknownKind  errx.Code = "UNKNOWN_KIND"
)

var (
	ErrCannotAfford = errx.NewBiz(CodeCannotAfford, "资源不足")
	ErrPeasantBusy  = errx.NewBiz(CodePeasantBusy, "农民正忙")
	ErrUnknownKind  = errx.NewBiz(CodeUnknownKind, "未知的单位或建筑种类")
)

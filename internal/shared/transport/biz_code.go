package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 响应体 `code` 字段的取值。
const (
	OK           = 0
	InvalidParam = 400
	NotFound     = 404
	SystemError  = 500
)

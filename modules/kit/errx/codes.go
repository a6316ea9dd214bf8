package errx

// 跨组件统一的系统类错误码；业务拒绝码由各业务包自行定义。
const (
	// CodeInterrupted 表示阻塞等待（锁、join、集结点）被 context 打断。
	CodeInterrupted Code = "INTERRUPTED"
	// CodeStorage 表示战报存储不可用。
	CodeStorage Code = "STORAGE_UNAVAILABLE"
	// CodeInternal 兜底。
	CodeInternal Code = "INTERNAL_ERROR"
)

var (
	ErrInterrupted = NewSys(CodeInterrupted, "等待被打断")
	ErrStorage     = NewSys(CodeStorage, "存储不可用")
	ErrInternal    = NewSys(CodeInternal, "内部错误")
)

package logx

import (
	"errors"
	"fmt"
	"runtime"
)

type codeTextProvider interface {
	CodeText() string
}

type dataProvider interface {
	Data() map[string]any
}

type stackProvider interface {
	Stack() []uintptr
}

type ErrorLog struct {
	Error      string
	Code       string
	Data       map[string]any
	CauseChain []string
	Origin     string
}

// BuildErrorLog 把错误码、上下文、cause 链与发生处提取出来，统一打印。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var cp codeTextProvider
	if errors.As(err, &cp) {
		out.Code = cp.CodeText()
	}
	var dp dataProvider
	if errors.As(err, &dp) {
		out.Data = dp.Data()
	}
	var sp stackProvider
	if errors.As(err, &sp) {
		out.Origin = originOf(sp.Stack())
	}
	for cur, i := errors.Unwrap(err), 0; cur != nil && i < 20; cur, i = errors.Unwrap(cur), i+1 {
		out.CauseChain = append(out.CauseChain, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

func originOf(pcs []uintptr) string {
	if len(pcs) == 0 {
		return ""
	}
	f, _ := runtime.CallersFrames(pcs).Next()
	if f.Function == "" {
		return ""
	}
	return fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
}

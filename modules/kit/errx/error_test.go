package errx

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("CANNOT_AFFORD", "gold").WithData("gold", 10)
	e2 := NewBiz("CANNOT_AFFORD", "wood").WithData("wood", 3)
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true, e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, ErrInterrupted) {
		t.Fatalf("期望不同 code 不相等")
	}
}

func TestError_中断错误捕获一次栈_保留cause(t *testing.T) {
	err := ErrInterrupted.WithCause(context.Canceled)
	if len(err.Stack()) == 0 {
		t.Fatalf("期望系统错误捕获栈")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("期望保留 context.Canceled cause, err=%v", err)
	}
	outer := ErrInternal.WithCause(err)
	if outer.Stack() != nil {
		t.Fatalf("期望 cause 链已有栈时不重复捕获")
	}
}

func TestIsBiz_沿错误链识别业务拒绝(t *testing.T) {
	biz := NewBiz("BUSY", "")
	if !IsBiz(fmt.Errorf("wrap: %w", biz)) {
		t.Fatalf("期望包装后的业务错误仍被识别")
	}
	if IsBiz(ErrInterrupted) {
		t.Fatalf("期望系统错误不是业务拒绝")
	}
	if IsBiz(errors.New("plain")) {
		t.Fatalf("期望普通错误不是业务拒绝")
	}
}

func TestError_WithData_不污染哨兵(t *testing.T) {
	base := NewBiz("X", "")
	derived := base.WithData("k", "v")
	if base.Data() != nil {
		t.Fatalf("期望哨兵错误 data 仍为空, got=%v", base.Data())
	}
	if derived.Data()["k"] != "v" {
		t.Fatalf("期望派生错误带 data, got=%v", derived.Data())
	}
}

package ws

import (
	"context"
	"testing"

	"BaseWars/internal/shared/transport"
)

func newResp() *WsMsgResp { return &WsMsgResp{Body: &RespBody{}} }

func TestRouter_Dispatch_命中处理器(t *testing.T) {
	r := NewRouter(nil)
	r.Group("base").Handle("status", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
		resp.Body.Msg = "ok"
	})

	resp := newResp()
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "base.status"}}, resp)
	if resp.Body.Code != transport.OK || resp.Body.Msg != "ok" {
		t.Fatalf("期望处理器被调用，got=%+v", resp.Body)
	}
}

func TestRouter_Dispatch_路由错误(t *testing.T) {
	r := NewRouter(nil)
	r.Group("base").Handle("status", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
	})

	cases := []string{"base", "base.", "report.list", "base.unknown", "a.b.c"}
	for _, name := range cases {
		resp := newResp()
		r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: name}}, resp)
		if resp.Body.Code != transport.InvalidParam {
			t.Fatalf("路由 %q 期望 InvalidParam，got=%d", name, resp.Body.Code)
		}
	}
}

func TestRouter_Dispatch_处理器漏设业务码(t *testing.T) {
	r := NewRouter(nil)
	r.Group("base").Handle("noop", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {})

	resp := newResp()
	r.Dispatch(&WsMsgReq{Body: &ReqBody{Name: "base.noop"}}, resp)
	if resp.Body.Code != transport.SystemError {
		t.Fatalf("期望默认 SystemError，got=%d", resp.Body.Code)
	}
}

func TestBindJSON(t *testing.T) {
	var dst struct {
		Limit int `json:"limit"`
	}
	req := &WsMsgReq{Body: &ReqBody{Msg: map[string]any{"limit": 3}}}
	if err := BindJSON(req, &dst); err != nil || dst.Limit != 3 {
		t.Fatalf("期望解析 limit=3，got=%d err=%v", dst.Limit, err)
	}
	if err := BindJSON(&WsMsgReq{}, &dst); err == nil {
		t.Fatalf("期望空 body 报错")
	}
}

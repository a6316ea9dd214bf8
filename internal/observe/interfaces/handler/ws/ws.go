package ws

import (
	"context"

	"BaseWars/internal/observe/interfaces/handler"
	"BaseWars/internal/shared/transport"
	"BaseWars/internal/shared/transport/ws"
	"BaseWars/modules/kit/logx"
)

type WsHandler struct {
	observer *handler.Observer
	log      logx.Logger
}

func NewWsHandler(o *handler.Observer, l logx.Logger) *WsHandler {
	if l == nil {
		l = logx.Nop()
	}
	return &WsHandler{observer: o, log: l}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	baseGroup := r.Group("base")
	baseGroup.Handle("list", h.List)
	baseGroup.Handle("status", h.Status)

	reportGroup := r.Group("report")
	reportGroup.Handle("list", h.Reports)

	feedGroup := r.Group("feed")
	feedGroup.Handle("subscribe", h.Subscribe)
}

func (h *WsHandler) List(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	h.ok(wsResp, h.observer.Statuses())
}

func (h *WsHandler) Status(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req handler.BaseReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	st, err := h.observer.Status(req.Name)
	if err != nil {
		h.error(ctx, wsResp, "ws.base.status", err)
		return
	}
	h.ok(wsResp, st)
}

func (h *WsHandler) Reports(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req handler.ReportsReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	reports, err := h.observer.Reports(ctx, req.Limit)
	if err != nil {
		h.error(ctx, wsResp, "ws.report.list", err)
		return
	}
	h.ok(wsResp, reports)
}

// Subscribe 切换本连接的事件过滤：name 为空表示订阅全部基地。
func (h *WsHandler) Subscribe(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if wsReq.Conn == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	var req handler.BaseReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	if req.Name == "" {
		wsReq.Conn.RemoveProperty(ws.ConnKeyBase)
		h.ok(wsResp, nil)
		return
	}
	if _, err := h.observer.Status(req.Name); err != nil {
		h.error(ctx, wsResp, "ws.feed.subscribe", err)
		return
	}
	wsReq.Conn.SetProperty(ws.ConnKeyBase, req.Name)
	h.ok(wsResp, nil)
}

func (h *WsHandler) ok(wsResp *ws.WsMsgResp, data any) {
	wsResp.Body.Code = transport.OK
	wsResp.Body.Msg = data
}

func (h *WsHandler) fail(wsResp *ws.WsMsgResp, code int, msg string) {
	wsResp.Body.Code = code
	wsResp.Body.Msg = msg
}

func (h *WsHandler) error(ctx context.Context, wsResp *ws.WsMsgResp, action string, err error) {
	code, msg := handler.HandleError(ctx, h.log, action, err)
	h.fail(wsResp, code, msg)
}

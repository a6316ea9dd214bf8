package http

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"BaseWars/internal/observe/interfaces/handler"
	"BaseWars/internal/shared/transport"
	"BaseWars/modules/kit/logx"
)

type HttpHandler struct {
	observer *handler.Observer
	metrics  nethttp.Handler
	log      logx.Logger
}

// NewHttpHandler 的 metrics 为 nil 时不挂 /metrics。
func NewHttpHandler(o *handler.Observer, metrics nethttp.Handler, l logx.Logger) *HttpHandler {
	if l == nil {
		l = logx.Nop()
	}
	return &HttpHandler{observer: o, metrics: metrics, log: l}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/bases", h.Bases)
	group.GET("/bases/:name", h.Base)
	group.GET("/reports", h.Reports)
	if h.metrics != nil {
		group.GET("/metrics", gin.WrapH(h.metrics))
	}
}

func (h *HttpHandler) Bases(c *gin.Context) {
	h.ok(c, h.observer.Statuses())
}

func (h *HttpHandler) Base(c *gin.Context) {
	st, err := h.observer.Status(c.Param("name"))
	if err != nil {
		h.error(c.Request.Context(), c, "http.base", err)
		return
	}
	h.ok(c, st)
}

func (h *HttpHandler) Reports(c *gin.Context) {
	ctx := c.Request.Context()

	var req handler.ReportsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	reports, err := h.observer.Reports(ctx, req.Limit)
	if err != nil {
		h.error(ctx, c, "http.reports", err)
		return
	}
	h.ok(c, reports)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, handler.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, handler.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action string, err error) {
	code, msg := handler.HandleError(ctx, h.log, action, err)
	h.fail(c, code, msg)
}

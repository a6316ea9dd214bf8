// Package interfaces 是观战接口：HTTP 查询基地与战报，WS 额外推送实时事件。
package interfaces

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"BaseWars/internal/observe/interfaces/handler"
	"BaseWars/internal/observe/interfaces/handler/http"
	wshandler "BaseWars/internal/observe/interfaces/handler/ws"
	transporthttp "BaseWars/internal/shared/transport/http"
	"BaseWars/internal/shared/transport/ws"
	"BaseWars/modules/kit/logx"
)

type Module struct {
	wsHandler   *wshandler.WsHandler
	httpHandler *http.HttpHandler
}

func New(o *handler.Observer, metrics nethttp.Handler, l logx.Logger) *Module {
	return &Module{
		wsHandler:   wshandler.NewWsHandler(o, l),
		httpHandler: http.NewHttpHandler(o, metrics, l),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)

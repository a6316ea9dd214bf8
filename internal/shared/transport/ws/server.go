package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"BaseWars/modules/kit/logx"
)

type Server struct {
	router   *Router
	hub      *Hub
	log      logx.Logger
	upgrader websocket.Upgrader
}

func NewServer(r *Router, hub *Hub, l logx.Logger) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router: r,
		hub:    hub,
		log:    l,
		upgrader: websocket.Upgrader{
			// 观战页面可能来自任意源
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP 升级连接；query 参数 base 非空时只订阅该基地。
func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	wsServer := NewWsServer(wsConn, s.log)
	wsServer.Router(s.router)
	if base := req.URL.Query().Get(ConnKeyBase); base != "" {
		wsServer.SetProperty(ConnKeyBase, base)
	}
	if s.hub != nil {
		s.hub.Add(wsServer)
	}
	wsServer.Run()
	s.log.Info("websocket upgrade success", zap.String("remote", wsServer.Addr()))
}

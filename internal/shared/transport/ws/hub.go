package ws

import (
	"sync"

	"go.uber.org/zap"

	"BaseWars/internal/shared/event"
	"BaseWars/modules/kit/logx"
)

// Hub 持有全部观战连接，把基地事件广播给它们。实现 event.Sink。
type Hub struct {
	sync.RWMutex
	conns map[WSConn]struct{}
	log   logx.Logger
}

func NewHub(l logx.Logger) *Hub {
	if l == nil {
		l = logx.Nop()
	}
	return &Hub{
		conns: make(map[WSConn]struct{}),
		log:   l,
	}
}

// Add 登记连接；连接关闭后自动移除，避免 conns 逐步膨胀。
func (h *Hub) Add(conn WSConn) {
	if conn == nil {
		return
	}
	h.Lock()
	if _, ok := h.conns[conn]; ok {
		h.Unlock()
		return
	}
	h.conns[conn] = struct{}{}
	h.Unlock()

	go h.watchConnDone(conn)
}

func (h *Hub) watchConnDone(conn WSConn) {
	<-conn.Done()
	h.Remove(conn)
}

func (h *Hub) Remove(conn WSConn) {
	h.Lock()
	defer h.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) Len() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.conns)
}

// Publish 只做非阻塞投递，慢连接丢消息而不是拖慢基地。
func (h *Hub) Publish(e event.Event) {
	h.RLock()
	conns := make([]WSConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.RUnlock()

	for _, c := range conns {
		if want, _ := c.GetProperty(ConnKeyBase).(string); want != "" && want != e.Base {
			continue
		}
		if !c.Push(EventMsg, e) {
			h.log.Debug("hub drop event", zap.String("remote", c.Addr()), zap.String("kind", string(e.Kind)))
		}
	}
}

// Close 断开全部连接。
func (h *Hub) Close() {
	h.RLock()
	conns := make([]WSConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}

var _ event.Sink = (*Hub)(nil)

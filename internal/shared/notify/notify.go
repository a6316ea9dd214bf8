// Package notify 提供"状态变了"广播：等待方拿到当前 channel，变更方关闭它并换一个新的。
package notify

import "sync"

type Notifier struct {
	mu sync.Mutex
	ch chan struct{}
}

func New() *Notifier {
	return &Notifier{ch: make(chan struct{})}
}

// C 返回下一次 Broadcast 时会被关闭的 channel。
// 调用方应先取 C 再检查条件，避免漏掉检查与等待之间的变更。
func (n *Notifier) C() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ch
}

func (n *Notifier) Broadcast() {
	n.mu.Lock()
	close(n.ch)
	n.ch = make(chan struct{})
	n.mu.Unlock()
}

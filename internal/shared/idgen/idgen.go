// Package idgen 生成进程内唯一且单调递增的单位/建筑 ID。
package idgen

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// 2025-01-01 00:00:00 UTC，毫秒
	epochMilli int64 = 1735689600000

	nodeBits = 8
	seqBits  = 14

	maxNode = -1 ^ (-1 << nodeBits)
	maxSeq  = -1 ^ (-1 << seqBits)
)

// Generator 是 snowflake 风格的发号器：时间戳 | 节点 | 毫秒内序号。
type Generator struct {
	mu     sync.Mutex
	node   int64
	lastMs int64
	seq    int64
	now    func() int64
}

func New(node int64) (*Generator, error) {
	if node < 0 || node > maxNode {
		return nil, fmt.Errorf("idgen: node %d out of range [0,%d]", node, maxNode)
	}
	return &Generator{node: node, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now()
	if ms < g.lastMs {
		// 时钟回拨：沿用上一毫秒，保证单调
		ms = g.lastMs
	}
	if ms == g.lastMs {
		g.seq = (g.seq + 1) & maxSeq
		if g.seq == 0 {
			for ms <= g.lastMs {
				ms = g.now()
			}
		}
	} else {
		g.seq = 0
	}
	g.lastMs = ms
	return (ms-epochMilli)<<(nodeBits+seqBits) | g.node<<seqBits | g.seq
}

type nodeEnv struct {
	Node int64 `env:"BASEWARS_NODE_ID" envDefault:"1"`
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Next 使用进程级默认发号器；节点号取自 BASEWARS_NODE_ID，非法时退回 1。
func Next() int64 {
	defaultOnce.Do(func() {
		var ne nodeEnv
		if err := env.Parse(&ne); err == nil {
			defaultGen, _ = New(ne.Node)
		}
		if defaultGen == nil {
			defaultGen, _ = New(1)
		}
	})
	return defaultGen.Next()
}

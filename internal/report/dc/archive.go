// Package dc 异步归档战报：调用方只入队，后台单个写协程负责落库。
package dc

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"BaseWars/internal/report"
	"BaseWars/internal/report/app/port"
	"BaseWars/modules/kit/logx"
)

type Archive struct {
	repo       port.Repository
	log        logx.Logger
	retryDelay time.Duration

	mu      sync.Mutex
	pending []*report.WarReport
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewArchive(repo port.Repository, l logx.Logger) *Archive {
	if l == nil {
		l = logx.Nop()
	}
	a := &Archive{
		repo:       repo,
		log:        l,
		retryDelay: 200 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go a.writerLoop()
	return a
}

func (a *Archive) Repo() port.Repository { return a.repo }

// Enqueue 把战报放入待写队列，关闭后的入队被丢弃。
func (a *Archive) Enqueue(r *report.WarReport) bool {
	if r == nil {
		return false
	}
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return false
	}
	a.pending = append(a.pending, r)
	a.mu.Unlock()
	a.signal()
	return true
}

// Close 停止接收新战报，并等待已入队的战报写完（或 ctx 结束）。
func (a *Archive) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.stop)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Archive) signal() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Archive) popPending() []*report.WarReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := a.pending
	a.pending = nil
	return batch
}

// requeueOnError 把写失败的战报放回队首；已关闭时返回 false，由调用方放弃。
func (a *Archive) requeueOnError(batch []*report.WarReport) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return false
	}
	a.pending = append(batch, a.pending...)
	return true
}

func (a *Archive) writerLoop() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.consumePending()
		case <-a.stop:
			a.consumePending()
			return
		}
	}
}

func (a *Archive) consumePending() {
	for {
		batch := a.popPending()
		if len(batch) == 0 {
			return
		}
		for i, r := range batch {
			err := a.repo.Save(context.Background(), r)
			if err == nil {
				continue
			}
			logx.ReportSysErrorWithLoggerContext(context.Background(), a.log, logx.NewSysLog("archive_report", err),
				zap.String("report_id", r.ID))
			if !a.requeueOnError(batch[i:]) {
				a.log.Warn("archive closed, report dropped", zap.Int("dropped", len(batch)-i))
				return
			}
			time.Sleep(a.retryDelay)
			break
		}
	}
}

// Package handler 是观战接口的协议无关部分：查询基地状态和战报。
package handler

import (
	"context"
	"sync"

	"BaseWars/internal/base"
	"BaseWars/internal/report"
	"BaseWars/modules/kit/errx"
)

const (
	CodeBaseUnknown errx.Code = "BASE_UNKNOWN"
	CodeBadLimit    errx.Code = "BAD_LIMIT"

	DefaultReportLimit = 20
	MaxReportLimit     = 200
)

var (
	ErrBaseUnknown = errx.NewBiz(CodeBaseUnknown, "基地不存在")
	ErrBadLimit    = errx.NewBiz(CodeBadLimit, "limit 超出范围")
)

type StatusSource interface {
	Status() base.Status
}

type ReportLister interface {
	List(ctx context.Context, limit int) ([]report.WarReport, error)
}

type Observer struct {
	mu      sync.RWMutex
	bases   []StatusSource
	reports ReportLister
}

func NewObserver(reports ReportLister, bases ...StatusSource) *Observer {
	return &Observer{bases: bases, reports: reports}
}

// Attach 替换被观察的基地，每次新模拟开始时调用。
func (o *Observer) Attach(bases ...StatusSource) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bases = bases
}

func (o *Observer) snapshot() []StatusSource {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.bases
}

func (o *Observer) Statuses() []base.Status {
	bases := o.snapshot()
	out := make([]base.Status, 0, len(bases))
	for _, b := range bases {
		out = append(out, b.Status())
	}
	return out
}

func (o *Observer) Status(name string) (base.Status, error) {
	for _, b := range o.snapshot() {
		if s := b.Status(); s.Name == name {
			return s, nil
		}
	}
	return base.Status{}, ErrBaseUnknown.WithData("base", name)
}

// Reports 按完成时间倒序返回；limit 为 0 取默认值。
func (o *Observer) Reports(ctx context.Context, limit int) ([]report.WarReport, error) {
	if limit == 0 {
		limit = DefaultReportLimit
	}
	if limit < 0 || limit > MaxReportLimit {
		return nil, ErrBadLimit.WithData("limit", limit)
	}
	if o.reports == nil {
		return []report.WarReport{}, nil
	}
	return o.reports.List(ctx, limit)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"BaseWars/internal/report"
)

type ReportRepo struct {
	mu   sync.RWMutex
	byID map[string]report.WarReport
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{byID: make(map[string]report.WarReport)}
}

func (r *ReportRepo) Save(_ context.Context, rep *report.WarReport) error {
	if rep == nil {
		return nil
	}
	r.mu.Lock()
	r.byID[rep.ID] = *rep
	r.mu.Unlock()
	return nil
}

func (r *ReportRepo) List(_ context.Context, limit int) ([]report.WarReport, error) {
	r.mu.RLock()
	out := make([]report.WarReport, 0, len(r.byID))
	for _, rep := range r.byID {
		out = append(out, rep)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].FinishedAt.After(out[j].FinishedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReportRepo) Close(context.Context) error { return nil }

package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"BaseWars/internal/report"
	"BaseWars/internal/report/infra/persistence/memory"
)

// flakyRepo 前 failures 次 Save 失败。
type flakyRepo struct {
	*memory.ReportRepo
	mu       sync.Mutex
	failures int
	calls    int
}

func (f *flakyRepo) Save(ctx context.Context, r *report.WarReport) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()
	if fail {
		return errors.New("storage down")
	}
	return f.ReportRepo.Save(ctx, r)
}

func TestArchive_写失败后重试直到成功(t *testing.T) {
	repo := &flakyRepo{ReportRepo: memory.NewReportRepo(), failures: 2}
	a := NewArchive(repo, nil)
	a.retryDelay = time.Millisecond

	now := time.Now()
	a.Enqueue(&report.WarReport{ID: "r1", FinishedAt: now})
	a.Enqueue(&report.WarReport{ID: "r2", FinishedAt: now.Add(time.Second)})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := repo.List(context.Background(), 0)
		if len(got) == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("close err=%v", err)
	}
	got, _ := repo.List(context.Background(), 0)
	if len(got) != 2 {
		t.Fatalf("期望两份战报最终落库, got=%d", len(got))
	}
}

func TestArchive_关闭时写完队列并拒绝新战报(t *testing.T) {
	repo := memory.NewReportRepo()
	a := NewArchive(repo, nil)
	for i := 0; i < 10; i++ {
		a.Enqueue(&report.WarReport{ID: string(rune('a' + i))})
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		t.Fatalf("close err=%v", err)
	}
	if got, _ := repo.List(context.Background(), 0); len(got) != 10 {
		t.Fatalf("期望关闭前入队的战报全部写完, got=%d", len(got))
	}
	if a.Enqueue(&report.WarReport{ID: "late"}) {
		t.Fatalf("期望关闭后拒绝入队")
	}
}

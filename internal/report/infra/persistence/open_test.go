package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"BaseWars/internal/report/infra/persistence/memory"
	"BaseWars/internal/report/infra/persistence/sqlite"
	"BaseWars/internal/shared/simconfig"
)

func TestOpen_按driver选择实现(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, simconfig.ReportConfig{Driver: DriverMemory}, nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, ok := repo.(*memory.ReportRepo); !ok {
		t.Fatalf("期望 memory 实现, got=%T", repo)
	}

	cfg := simconfig.ReportConfig{Driver: DriverSQLite, SQLite: simconfig.SQLiteConfig{Path: filepath.Join(t.TempDir(), "r.db")}}
	repo, err = Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	defer repo.Close(ctx)
	if _, ok := repo.(*sqlite.ReportRepo); !ok {
		t.Fatalf("期望 sqlite 实现, got=%T", repo)
	}

	if _, err := Open(ctx, simconfig.ReportConfig{Driver: "redis"}, nil); err == nil {
		t.Fatalf("期望未知 driver 报错")
	}
}

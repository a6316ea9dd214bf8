// Package persistence 按配置选择战报存储实现。
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"BaseWars/internal/report/app/port"
	"BaseWars/internal/report/infra/persistence/memory"
	"BaseWars/internal/report/infra/persistence/mongodb"
	"BaseWars/internal/report/infra/persistence/mysql"
	"BaseWars/internal/report/infra/persistence/sqlite"
	"BaseWars/internal/shared/infrastructure/db"
	"BaseWars/internal/shared/infrastructure/mongo"
	"BaseWars/internal/shared/simconfig"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
)

const (
	DriverMemory  = "memory"
	DriverSQLite  = "sqlite"
	DriverMongoDB = "mongodb"
	DriverMySQL   = "mysql"
)

func Open(ctx context.Context, cfg simconfig.ReportConfig, l logx.Logger) (port.Repository, error) {
	if l == nil {
		l = logx.Nop()
	}
	var (
		repo port.Repository
		err  error
	)
	switch cfg.Driver {
	case "", DriverMemory:
		repo = memory.NewReportRepo()
	case DriverSQLite:
		repo, err = sqlite.Open(cfg.SQLite.Path)
	case DriverMongoDB:
		client, cerr := mongo.Open(ctx, cfg.MongoDB, l)
		if cerr != nil {
			return nil, errx.ErrStorage.WithCause(cerr).WithData("driver", cfg.Driver)
		}
		repo = mongodb.NewReportRepo(client, cfg.MongoDB.Database)
	case DriverMySQL:
		gdb, gerr := db.Open(cfg.MySQL)
		if gerr != nil {
			return nil, errx.ErrStorage.WithCause(gerr).WithData("driver", cfg.Driver)
		}
		repo, err = mysql.NewReportRepo(gdb)
	default:
		return nil, fmt.Errorf("unknown report driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	l.Info("report store ready", zap.String("driver", cfg.Driver))
	return repo, nil
}

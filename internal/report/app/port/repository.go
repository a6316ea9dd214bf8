package port

import (
	"context"

	"BaseWars/internal/report"
)

// Repository 是战报存储。Save 以 ID 幂等覆盖；List 按结束时间倒序。
type Repository interface {
	Save(ctx context.Context, r *report.WarReport) error
	List(ctx context.Context, limit int) ([]report.WarReport, error)
	Close(ctx context.Context) error
}

const (
	OpSave = "repo.report.Save"
	OpList = "repo.report.List"
)

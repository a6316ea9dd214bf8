package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"BaseWars/internal/report"
	"BaseWars/internal/report/app/port"
	"BaseWars/modules/kit/errx"
)

// WarReportModel 是 war_reports 表的行。
type WarReportModel struct {
	ID         string    `gorm:"column:id;primaryKey;size:64"`
	WarID      string    `gorm:"column:war_id;size:64;index"`
	RunID      string    `gorm:"column:run_id;size:64"`
	BaseA      string    `gorm:"column:base_a;size:64"`
	BaseB      string    `gorm:"column:base_b;size:64"`
	Winner     string    `gorm:"column:winner;size:64"`
	Loser      string    `gorm:"column:loser;size:64"`
	DeathsA    int       `gorm:"column:deaths_a"`
	DeathsB    int       `gorm:"column:deaths_b"`
	Survivors  int       `gorm:"column:survivors"`
	StartedAt  time.Time `gorm:"column:started_at"`
	FinishedAt time.Time `gorm:"column:finished_at;index"`
}

func (WarReportModel) TableName() string { return "war_reports" }

type ReportRepo struct {
	db *gorm.DB
}

// NewReportRepo 会自动迁移表结构。
func NewReportRepo(db *gorm.DB) (*ReportRepo, error) {
	if err := db.AutoMigrate(&WarReportModel{}); err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("op", "migrate")
	}
	return &ReportRepo{db: db}, nil
}

func (r *ReportRepo) Save(ctx context.Context, rep *report.WarReport) error {
	if rep == nil {
		return nil
	}
	m := WarReportModel(*rep)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return errx.ErrStorage.WithCause(err).WithData("op", port.OpSave).WithData("id", rep.ID)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]report.WarReport, error) {
	q := r.db.WithContext(ctx).Order("finished_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []WarReportModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("op", port.OpList)
	}
	out := make([]report.WarReport, 0, len(rows))
	for _, m := range rows {
		out = append(out, report.WarReport(m))
	}
	return out, nil
}

func (r *ReportRepo) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

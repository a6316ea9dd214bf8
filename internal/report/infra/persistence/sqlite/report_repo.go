package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"BaseWars/internal/report"
	"BaseWars/internal/report/app/port"
	sqlitedb "BaseWars/internal/shared/infrastructure/sqlite"
	"BaseWars/modules/kit/errx"
)

const schema = `
CREATE TABLE IF NOT EXISTS war_reports (
	id TEXT PRIMARY KEY,
	war_id TEXT NOT NULL,
	run_id TEXT NOT NULL,
	base_a TEXT NOT NULL,
	base_b TEXT NOT NULL,
	winner TEXT NOT NULL,
	loser TEXT NOT NULL,
	deaths_a INTEGER NOT NULL,
	deaths_b INTEGER NOT NULL,
	survivors INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_war_reports_finished ON war_reports(finished_at);
`

// row 里的时间以 UnixMilli 存储。
type row struct {
	ID         string `db:"id"`
	WarID      string `db:"war_id"`
	RunID      string `db:"run_id"`
	BaseA      string `db:"base_a"`
	BaseB      string `db:"base_b"`
	Winner     string `db:"winner"`
	Loser      string `db:"loser"`
	DeathsA    int    `db:"deaths_a"`
	DeathsB    int    `db:"deaths_b"`
	Survivors  int    `db:"survivors"`
	StartedAt  int64  `db:"started_at"`
	FinishedAt int64  `db:"finished_at"`
}

type ReportRepo struct {
	db *sqlx.DB
}

func Open(path string) (*ReportRepo, error) {
	db, err := sqlitedb.Open(path, schema)
	if err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("path", path)
	}
	return &ReportRepo{db: db}, nil
}

func (r *ReportRepo) Save(ctx context.Context, rep *report.WarReport) error {
	if rep == nil {
		return nil
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO war_reports
			(id, war_id, run_id, base_a, base_b, winner, loser, deaths_a, deaths_b, survivors, started_at, finished_at)
		VALUES
			(:id, :war_id, :run_id, :base_a, :base_b, :winner, :loser, :deaths_a, :deaths_b, :survivors, :started_at, :finished_at)`,
		toRow(rep))
	if err != nil {
		return errx.ErrStorage.WithCause(err).WithData("op", port.OpSave).WithData("id", rep.ID)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]report.WarReport, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []row
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM war_reports ORDER BY finished_at DESC LIMIT ?`, limit); err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("op", port.OpList)
	}
	out := make([]report.WarReport, 0, len(rows))
	for _, rw := range rows {
		out = append(out, fromRow(rw))
	}
	return out, nil
}

func (r *ReportRepo) Close(context.Context) error {
	return r.db.Close()
}

func toRow(rep *report.WarReport) row {
	return row{
		ID: rep.ID, WarID: rep.WarID, RunID: rep.RunID,
		BaseA: rep.BaseA, BaseB: rep.BaseB, Winner: rep.Winner, Loser: rep.Loser,
		DeathsA: rep.DeathsA, DeathsB: rep.DeathsB, Survivors: rep.Survivors,
		StartedAt: rep.StartedAt.UnixMilli(), FinishedAt: rep.FinishedAt.UnixMilli(),
	}
}

func fromRow(rw row) report.WarReport {
	return report.WarReport{
		ID: rw.ID, WarID: rw.WarID, RunID: rw.RunID,
		BaseA: rw.BaseA, BaseB: rw.BaseB, Winner: rw.Winner, Loser: rw.Loser,
		DeathsA: rw.DeathsA, DeathsB: rw.DeathsB, Survivors: rw.Survivors,
		StartedAt: time.UnixMilli(rw.StartedAt), FinishedAt: time.UnixMilli(rw.FinishedAt),
	}
}

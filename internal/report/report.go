// Package report 汇总一场战争的结果并归档。
package report

import "time"

// WarReport 是一场战争结束后的战报，生成后不再修改。
type WarReport struct {
	ID         string    `json:"id"`
	WarID      string    `json:"war_id"`
	RunID      string    `json:"run_id"`
	BaseA      string    `json:"base_a"`
	BaseB      string    `json:"base_b"`
	Winner     string    `json:"winner"`
	Loser      string    `json:"loser"`
	DeathsA    int       `json:"deaths_a"`
	DeathsB    int       `json:"deaths_b"`
	Survivors  int       `json:"survivors"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func (r *WarReport) Duration() time.Duration {
	if r == nil || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Deaths 返回 base 一方的阵亡数。
func (r *WarReport) Deaths(base string) int {
	switch base {
	case r.BaseA:
		return r.DeathsA
	case r.BaseB:
		return r.DeathsB
	}
	return 0
}

// Result 是出征结束时由调用方给出的胜负。
type Result struct {
	WarID     string
	RunID     string
	Winner    string
	Loser     string
	Survivors int
}

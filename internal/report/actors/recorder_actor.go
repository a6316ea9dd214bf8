package actors

import (
	"context"
	"slices"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"BaseWars/internal/report"
	"BaseWars/internal/report/dc"
	"BaseWars/internal/shared/event"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
)

type State int

const (
	None State = iota
	Online
	Stopping
)

const CodeWarUnknown errx.Code = "WAR_UNKNOWN"

var ErrWarUnknown = errx.NewBiz(CodeWarUnknown, "没有这场战争的记录")

// tally 是一场进行中战争的累计。
type tally struct {
	bases     []string
	deaths    map[string]int
	startedAt time.Time
}

// RecorderActor 串行消费基地事件：按战争累计阵亡，结算时生成战报并交给归档器。
// 所有状态只在 Receive 内访问。
type RecorderActor struct {
	state   State
	archive *dc.Archive
	log     logx.Logger

	wars      map[string]*tally
	activeWar map[string]string // base -> war id
}

func NewRecorderActor(archive *dc.Archive, l logx.Logger) *RecorderActor {
	if l == nil {
		l = logx.Nop()
	}
	return &RecorderActor{
		archive:   archive,
		log:       l,
		wars:      make(map[string]*tally),
		activeWar: make(map[string]string),
	}
}

func (r *RecorderActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		r.state = Online
	case *actor.Stopping:
		r.state = Stopping
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := r.archive.Close(closeCtx); err != nil {
			logx.ReportSysErrorWithLoggerContext(closeCtx, r.log, logx.NewSysLog("archive_close", err))
		}
	case event.Event:
		r.onEvent(msg)
	case *FinishWar:
		rep, err := r.finish(msg.Result)
		ctx.Respond(&FinishWarReply{Report: rep, Err: err})
	case *ListReports:
		reps, err := r.archive.Repo().List(context.Background(), msg.Limit)
		ctx.Respond(&ListReportsReply{Reports: reps, Err: err})
	}
}

func (r *RecorderActor) onEvent(e event.Event) {
	switch e.Kind {
	case event.ArmyAssembled:
		r.join(e.WarID, e.Base)
	case event.WarStarted:
		t := r.join(e.WarID, e.Base)
		if t.startedAt.IsZero() || e.At.Before(t.startedAt) {
			t.startedAt = e.At
		}
	case event.PersonnelDeath:
		warID := e.WarID
		if warID == "" {
			warID = r.activeWar[e.Base]
		}
		if t := r.wars[warID]; t != nil {
			t.deaths[e.Base]++
		}
	}
}

// join 登记 base 参加 warID，返回该战争的累计。
func (r *RecorderActor) join(warID, base string) *tally {
	t, ok := r.wars[warID]
	if !ok {
		t = &tally{deaths: make(map[string]int)}
		r.wars[warID] = t
	}
	if !slices.Contains(t.bases, base) {
		t.bases = append(t.bases, base)
	}
	r.activeWar[base] = warID
	return t
}

func (r *RecorderActor) finish(res report.Result) (*report.WarReport, error) {
	t, ok := r.wars[res.WarID]
	if !ok {
		return nil, ErrWarUnknown.WithData("war_id", res.WarID)
	}
	delete(r.wars, res.WarID)
	for _, b := range t.bases {
		if r.activeWar[b] == res.WarID {
			delete(r.activeWar, b)
		}
	}

	rep := &report.WarReport{
		ID:         uuid.NewString(),
		WarID:      res.WarID,
		RunID:      res.RunID,
		Winner:     res.Winner,
		Loser:      res.Loser,
		Survivors:  res.Survivors,
		StartedAt:  t.startedAt,
		FinishedAt: time.Now(),
	}
	rep.BaseA, rep.BaseB = res.Winner, res.Loser
	if len(t.bases) == 2 {
		rep.BaseA, rep.BaseB = t.bases[0], t.bases[1]
	}
	rep.DeathsA, rep.DeathsB = t.deaths[rep.BaseA], t.deaths[rep.BaseB]

	if !r.archive.Enqueue(rep) {
		r.log.Warn("report not archived", zap.String("war_id", res.WarID))
	}
	r.log.Info("war report",
		zap.String("war_id", rep.WarID),
		zap.String("winner", rep.Winner),
		zap.Int("survivors", rep.Survivors),
		zap.Duration("duration", rep.Duration()),
	)
	return rep, nil
}

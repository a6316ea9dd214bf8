// Package sim 把两座基地从开局一路推到战斗结束，并负责周边设施（战报、指标、观战接口）的生命周期。
package sim

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"BaseWars/internal/base"
	"BaseWars/internal/combat"
	"BaseWars/internal/observe/interfaces"
	"BaseWars/internal/observe/interfaces/handler"
	"BaseWars/internal/report"
	reportactor "BaseWars/internal/report/actor"
	"BaseWars/internal/report/infra/persistence"
	"BaseWars/internal/shared/event"
	"BaseWars/internal/shared/gameconfig/unitconf"
	"BaseWars/internal/shared/metrics"
	"BaseWars/internal/shared/simconfig"
	transporthttp "BaseWars/internal/shared/transport/http"
	"BaseWars/internal/shared/transport/ws"
	"BaseWars/internal/war"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
	"BaseWars/modules/kit/tracex"
)

const shutdownTimeout = 5 * time.Second

// Summary 是一次模拟的结果。
type Summary struct {
	RunID    string
	WarID    string
	Variant  int
	Winner   string
	Loser    string
	Report   *report.WarReport
	Statuses []base.Status
	Prepared time.Duration
	Elapsed  time.Duration
}

type Runner struct {
	cfg     *simconfig.Config
	units   unitconf.Table
	log     logx.Logger
	metrics *metrics.Metrics
	extra   event.Sink

	reports  *reportactor.Runtime
	hub      *ws.Hub
	observer *handler.Observer
	srv      *transporthttp.Server
	srvErr   chan error
}

type Option func(*Runner)

func WithLogger(l logx.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithEvents 追加一个事件订阅者，和战报、观战推送并列。
func WithEvents(s event.Sink) Option {
	return func(r *Runner) { r.extra = s }
}

// New 校验配置并打开战报存储；HTTP 开启时同时开始监听。
func New(ctx context.Context, cfg *simconfig.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = simconfig.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	units, err := cfg.UnitTable()
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:     cfg,
		units:   units,
		log:     logx.Nop(),
		metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(r)
	}

	repo, err := persistence.Open(ctx, cfg.Report, r.log)
	if err != nil {
		return nil, err
	}
	r.reports = reportactor.NewRuntime(repo, r.log, 0)
	r.hub = ws.NewHub(r.log)
	r.observer = handler.NewObserver(r.reports)

	if cfg.HTTP.Enabled {
		r.serve()
	}
	return r, nil
}

func (r *Runner) serve() {
	r.srv = transporthttp.NewHttpServer(r.cfg.HTTP.Addr, nil, r.log)
	module := interfaces.New(r.observer, r.metrics.Handler(), r.log)
	module.HttpRegister(r.srv.Group())

	wsRouter := ws.NewRouter(r.log)
	module.WsRegister(wsRouter)
	wsServer := ws.NewServer(wsRouter, r.hub, r.log)
	r.srv.Engine().GET("/ws", gin.WrapH(wsServer))

	r.srvErr = make(chan error, 1)
	go func() {
		r.log.Info("observe server listening", zap.String("addr", r.cfg.HTTP.Addr))
		if err := r.srv.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			r.log.Error("observe server stopped", zap.Error(err))
			r.srvErr <- err
			return
		}
		r.srvErr <- nil
	}()
}

// ServeErr 在观战服务异常退出时收到错误；未开启 HTTP 时返回 nil channel。
func (r *Runner) ServeErr() <-chan error {
	return r.srvErr
}

func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}

func (r *Runner) Reports(ctx context.Context, limit int) ([]report.WarReport, error) {
	return r.reports.List(ctx, limit)
}

// Run 执行一次完整模拟：双方并发备战，集结后同时出征，结算战报。
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	runID := tracex.NewID()
	ctx = tracex.WithRunID(ctx, runID)
	if r.cfg.Sim.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Sim.Timeout)
		defer cancel()
	}
	log := r.log.WithContext(ctx)

	sim := r.cfg.Sim
	engine := combat.New(combat.NewRand(sim.Seed), combat.Pacing{
		WaitMin: sim.AttackWaitMin,
		WaitMax: sim.AttackWaitMax,
	}, combat.WithLogger(r.log), combat.WithMetrics(r.metrics))

	deps := base.Deps{
		Units:   r.units,
		Sim:     sim,
		Engine:  engine,
		Log:     r.log,
		Metrics: r.metrics,
		Events:  event.Fanout{r.reports, r.hub, r.extra},
	}
	a := base.New(sim.BaseNames[0], deps)
	b := base.New(sim.BaseNames[1], deps)
	defer a.Close()
	defer b.Close()
	r.observer.Attach(a, b)

	log.Info("simulation started",
		zap.Strings("bases", sim.BaseNames),
		zap.Int("variant", sim.Variant),
		zap.Int64("seed", sim.Seed))

	sum := &Summary{RunID: runID, Variant: sim.Variant}
	defer func() {
		sum.Statuses = []base.Status{a.Status(), b.Status()}
		sum.Elapsed = time.Since(started)
	}()

	prep, pctx := errgroup.WithContext(ctx)
	prep.Go(func() error { return a.StartPreparation(pctx) })
	prep.Go(func() error { return b.StartPreparation(pctx) })
	if err := prep.Wait(); err != nil {
		return sum, err
	}
	sum.Prepared = time.Since(started)

	barrier := war.NewBarrier(tracex.NewID())
	sum.WarID = barrier.ID
	a.AssembleArmy(barrier)
	b.AssembleArmy(barrier)
	if err := barrier.WaitAssembled(ctx); err != nil {
		return sum, err
	}

	var outA, outB base.Outcome
	fight, fctx := errgroup.WithContext(ctx)
	fight.Go(func() (err error) {
		outA, err = a.GoToWar(fctx, b.Army(), barrier)
		return err
	})
	fight.Go(func() (err error) {
		outB, err = b.GoToWar(fctx, a.Army(), barrier)
		return err
	})
	if err := fight.Wait(); err != nil {
		return sum, err
	}

	winner, loser := a, b
	switch {
	case outA == base.Won || outB == base.Lost:
	case outB == base.Won || outA == base.Lost:
		winner, loser = b, a
	default:
		return sum, errx.ErrInternal.WithData("outcome", fmt.Sprintf("%s/%s", outA, outB))
	}
	sum.Winner, sum.Loser = winner.Name(), loser.Name()

	rep, err := r.reports.FinishWar(ctx, report.Result{
		WarID:     barrier.ID,
		RunID:     runID,
		Winner:    winner.Name(),
		Loser:     loser.Name(),
		Survivors: winner.Army().Len(),
	})
	if err != nil {
		return sum, err
	}
	sum.Report = rep

	log.Info("simulation finished",
		zap.String("winner", sum.Winner),
		zap.Int("survivors", rep.Survivors),
		zap.Duration("elapsed", time.Since(started)))
	return sum, nil
}

// Close 停止观战服务并让战报归档器落盘。
func (r *Runner) Close(ctx context.Context) error {
	var err error
	if r.srv != nil {
		sctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		err = r.srv.Shutdown(sctx)
		cancel()
	}
	r.hub.Close()
	r.reports.Shutdown()
	return err
}

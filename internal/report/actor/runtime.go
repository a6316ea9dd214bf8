// Package actor 托管战报记录 actor，对外提供同步的请求接口。
package actor

import (
	"context"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"BaseWars/internal/report"
	"BaseWars/internal/report/actors"
	"BaseWars/internal/report/app/port"
	"BaseWars/internal/report/dc"
	"BaseWars/internal/shared/event"
	"BaseWars/modules/kit/errx"
	"BaseWars/modules/kit/logx"
)

const defaultAskTimeout = 3 * time.Second

type Runtime struct {
	system   *protoactor.ActorSystem
	root     *protoactor.RootContext
	recorder *protoactor.PID
	timeout  time.Duration
}

func NewRuntime(repo port.Repository, l logx.Logger, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	system := protoactor.NewActorSystem()
	root := system.Root
	archive := dc.NewArchive(repo, l)
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewRecorderActor(archive, l)
	})
	return &Runtime{
		system:   system,
		root:     root,
		recorder: root.Spawn(props),
		timeout:  askTimeout,
	}
}

// Publish 实现 event.Sink：只投递到邮箱，不等待处理。
func (r *Runtime) Publish(e event.Event) {
	if r == nil || r.root == nil {
		return
	}
	r.root.Send(r.recorder, e)
}

// FinishWar 结算战争并返回战报；战报异步归档。
func (r *Runtime) FinishWar(ctx context.Context, res report.Result) (*report.WarReport, error) {
	raw, err := r.request(ctx, &actors.FinishWar{Result: res})
	if err != nil {
		return nil, err
	}
	reply, ok := raw.(*actors.FinishWarReply)
	if !ok {
		return nil, errx.ErrInternal.WithData("reply", raw)
	}
	return reply.Report, reply.Err
}

func (r *Runtime) List(ctx context.Context, limit int) ([]report.WarReport, error) {
	raw, err := r.request(ctx, &actors.ListReports{Limit: limit})
	if err != nil {
		return nil, err
	}
	reply, ok := raw.(*actors.ListReportsReply)
	if !ok {
		return nil, errx.ErrInternal.WithData("reply", raw)
	}
	return reply.Reports, reply.Err
}

// Shutdown 停止 recorder（触发归档器落盘）并关闭 actor system。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.recorder != nil {
		_ = r.root.StopFuture(r.recorder).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) request(ctx context.Context, msg any) (any, error) {
	if r == nil || r.root == nil || r.recorder == nil {
		return nil, errx.ErrInternal.WithData("reason", "actor runtime 未初始化")
	}
	res, err := r.root.RequestFuture(r.recorder, msg, r.timeoutFromContext(ctx)).Result()
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err).WithData("reason", "actor 请求失败")
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	return min(remain, r.timeout)
}

var _ event.Sink = (*Runtime)(nil)

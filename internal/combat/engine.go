// Package combat 结算一对一的回合制战斗，并在单位死亡时通知其所属基地。
package combat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"BaseWars/internal/base/army"
	"BaseWars/internal/base/unit"
	"BaseWars/internal/shared/metrics"
	"BaseWars/modules/kit/logx"
)

// Pacing 是两次出手之间的随机间隔区间 [WaitMin, WaitMax]。
type Pacing struct {
	WaitMin time.Duration
	WaitMax time.Duration
}

// StrikeHook 在每次命中后调用（锁外）。
type StrikeHook func(attacker, target *unit.Personnel, dmg int, killed bool)

type Engine struct {
	rng     Rand
	pacing  Pacing
	log     logx.Logger
	metrics *metrics.Metrics
	onHit   StrikeHook
}

type Option func(*Engine)

func WithLogger(l logx.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithStrikeHook(h StrikeHook) Option {
	return func(e *Engine) { e.onHit = h }
}

func New(rng Rand, pacing Pacing, opts ...Option) *Engine {
	if pacing.WaitMax < pacing.WaitMin {
		pacing.WaitMax = pacing.WaitMin
	}
	e := &Engine{rng: rng, pacing: pacing, log: logx.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartWar 让 self 逐个挑选存活的敌人作战，直到自己阵亡或敌军清空。
// 同一时刻 self 只参与一场交战。
func (e *Engine) StartWar(ctx context.Context, self *unit.Personnel, enemy *army.Army) error {
	for self.Alive() && !enemy.IsEmpty() {
		target, ok := enemy.Pick(e.rng.IntN)
		if !ok {
			return nil
		}
		if err := e.Engage(ctx, self, target); err != nil {
			return err
		}
	}
	return nil
}

// Engage 与 target 交战到一方阵亡：每回合出手一次，然后等待一个随机间隔。
func (e *Engine) Engage(ctx context.Context, self, target *unit.Personnel) error {
	self.SetEngaged(true)
	defer self.SetEngaged(false)

	for self.Alive() && target.Alive() {
		dmg := e.Damage(self)
		landed, killed := self.Strike(target, dmg)
		if landed {
			e.metrics.Strike(self.Owner().Name())
			if e.onHit != nil {
				e.onHit(self, target, dmg, killed)
			}
		}
		if killed {
			e.log.Debug("combatant killed",
				zap.Int64("attacker", self.ID()),
				zap.Int64("target", target.ID()),
				zap.String("target_base", target.Owner().Name()),
			)
			target.Owner().SignalPersonnelDeath(target)
			return nil
		}
		if err := unit.Sleep(ctx, e.Jitter()); err != nil {
			return err
		}
	}
	return nil
}

// Damage 在 [AttackMin, AttackMax] 内均匀取值（含两端）。
func (e *Engine) Damage(p *unit.Personnel) int {
	lo, hi := p.AttackRange()
	if hi <= lo {
		return lo
	}
	return lo + e.rng.IntN(hi-lo+1)
}

func (e *Engine) Jitter() time.Duration {
	span := e.pacing.WaitMax - e.pacing.WaitMin
	if span <= 0 {
		return e.pacing.WaitMin
	}
	return e.pacing.WaitMin + time.Duration(e.rng.Int64N(int64(span)+1))
}

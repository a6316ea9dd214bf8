// Package metrics 收敛模拟过程中的 prometheus 指标，所有方法对 nil 接收者安全。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	deposits   *prometheus.CounterVec
	trained    *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	built      *prometheus.CounterVec
	deaths     *prometheus.CounterVec
	strikes    *prometheus.CounterVec
	inTraining *prometheus.GaugeVec
	stock      *prometheus.GaugeVec
}

// New 使用独立 registry，避免测试之间重复注册。
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "harvest_deposits_total", Help: "Resource amount deposited by harvesters.",
		}, []string{"base", "resource"}),
		trained: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "units_trained_total", Help: "Units minted by the training coordinator.",
		}, []string{"base", "kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "training_rejected_total", Help: "Training attempts that produced no unit.",
		}, []string{"base", "kind", "reason"}),
		built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "buildings_built_total", Help: "Buildings finished.",
		}, []string{"base", "kind"}),
		deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "personnel_deaths_total", Help: "Combatants killed in war.",
		}, []string{"base", "kind"}),
		strikes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "basewars", Name: "strikes_total", Help: "Strikes landed in combat.",
		}, []string{"base"}),
		inTraining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "basewars", Name: "training_in_flight", Help: "Paid training delays currently in flight.",
		}, []string{"base"}),
		stock: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "basewars", Name: "pool_stock", Help: "Current resource pool counters.",
		}, []string{"base", "counter"}),
	}
	m.reg.MustRegister(m.deposits, m.trained, m.rejected, m.built, m.deaths, m.strikes, m.inTraining, m.stock)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Deposit(base, resource string, n int) {
	if m == nil {
		return
	}
	m.deposits.WithLabelValues(base, resource).Add(float64(n))
}

func (m *Metrics) Trained(base, kind string) {
	if m == nil {
		return
	}
	m.trained.WithLabelValues(base, kind).Inc()
}

func (m *Metrics) Rejected(base, kind, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(base, kind, reason).Inc()
}

func (m *Metrics) Built(base, kind string) {
	if m == nil {
		return
	}
	m.built.WithLabelValues(base, kind).Inc()
}

func (m *Metrics) Death(base, kind string) {
	if m == nil {
		return
	}
	m.deaths.WithLabelValues(base, kind).Inc()
}

func (m *Metrics) Strike(base string) {
	if m == nil {
		return
	}
	m.strikes.WithLabelValues(base).Inc()
}

// TrainingStarted 返回与之配对的结束回调。
func (m *Metrics) TrainingStarted(base string) func() {
	if m == nil {
		return func() {}
	}
	g := m.inTraining.WithLabelValues(base)
	g.Inc()
	return g.Dec
}

func (m *Metrics) Stock(base string, gold, wood, foodUsed, foodLimit int) {
	if m == nil {
		return
	}
	m.stock.WithLabelValues(base, "gold").Set(float64(gold))
	m.stock.WithLabelValues(base, "wood").Set(float64(wood))
	m.stock.WithLabelValues(base, "food_used").Set(float64(foodUsed))
	m.stock.WithLabelValues(base, "food_limit").Set(float64(foodLimit))
}

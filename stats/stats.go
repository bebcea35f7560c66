// Package stats wires paxos.Metrics to Prometheus, following the
// teacher's ProposerMetrics (paxos/proposermanager.go: a
// prometheus.Gauge plus an Observer updated from role state) and its
// stats/stats.go StatsPublisher's habit of scoping every collector under
// a node-identifying label.
package stats

import (
	"github.com/prometheus/client_golang/prometheus"

	"paxoscore.dev/server/paxos"
)

// Collector implements paxos.Metrics against a set of per-node-labelled
// Prometheus collectors, registered once into reg.
type Collector struct {
	leaderActive    prometheus.Gauge
	ballotRound     prometheus.Gauge
	scoutsSpawned   prometheus.Counter
	commandersSpawned prometheus.Counter
	preempted       prometheus.Counter
	acceptorRound   prometheus.Gauge
	commitSlot      prometheus.Gauge
	commits         prometheus.Counter
}

// NewCollector builds and registers a Collector labelled by node address.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, node paxos.Address) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"node": string(node)}
	c := &Collector{
		leaderActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paxoscore", Subsystem: "leader", Name: "active",
			Help: "1 if this node's Leader believes its ballot is adopted.", ConstLabels: labels,
		}),
		ballotRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paxoscore", Subsystem: "leader", Name: "ballot_round",
			Help: "Current round of this node's Leader's ballot.", ConstLabels: labels,
		}),
		scoutsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paxoscore", Subsystem: "leader", Name: "scouts_spawned_total",
			Help: "Scouts spawned by this node's Leader.", ConstLabels: labels,
		}),
		commandersSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paxoscore", Subsystem: "leader", Name: "commanders_spawned_total",
			Help: "Commanders spawned by this node's Leader.", ConstLabels: labels,
		}),
		preempted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paxoscore", Subsystem: "leader", Name: "preempted_total",
			Help: "Times this node's Leader was preempted.", ConstLabels: labels,
		}),
		acceptorRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paxoscore", Subsystem: "acceptor", Name: "promise_round",
			Help: "Current round of this node's Acceptor's promise.", ConstLabels: labels,
		}),
		commitSlot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paxoscore", Subsystem: "replica", Name: "next_commit_slot",
			Help: "Next slot this node's Replica will commit.", ConstLabels: labels,
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paxoscore", Subsystem: "replica", Name: "commits_total",
			Help: "Proposals committed by this node's Replica.", ConstLabels: labels,
		}),
	}
	reg.MustRegister(c.leaderActive, c.ballotRound, c.scoutsSpawned,
		c.commandersSpawned, c.preempted, c.acceptorRound, c.commitSlot, c.commits)
	return c
}

func (c *Collector) SetLeaderActive(active bool) {
	if active {
		c.leaderActive.Set(1)
	} else {
		c.leaderActive.Set(0)
	}
}

func (c *Collector) SetBallotRound(round uint64)          { c.ballotRound.Set(float64(round)) }
func (c *Collector) IncScoutsSpawned()                    { c.scoutsSpawned.Inc() }
func (c *Collector) IncCommandersSpawned()                { c.commandersSpawned.Inc() }
func (c *Collector) IncPreempted()                        { c.preempted.Inc() }
func (c *Collector) SetAcceptorPromiseRound(round uint64) { c.acceptorRound.Set(float64(round)) }
func (c *Collector) SetReplicaCommitSlot(slot uint64)      { c.commitSlot.Set(float64(slot)) }
func (c *Collector) IncCommits()                           { c.commits.Inc() }

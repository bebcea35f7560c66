package paxos

import (
	kitlog "github.com/go-kit/kit/log"
)

// Leader drives Scouts and Commanders and tracks adoption state. At most
// one Scout is live per leader (invariant L1, enforced by scouting);
// active implies no Scout is live and currentBallot has been adopted by a
// quorum (invariant L2). Leader is a permanent, node-lifetime role — it is
// never unregistered — unlike its Scout/Commander children.
type Leader struct {
	node      Node
	logger    kitlog.Logger
	metrics   Metrics
	peers     []Address
	self      Address
	current   Ballot
	active    bool
	scouting  bool
	proposals map[Slot]Proposal

	heartbeat TimerHandle
}

// NewLeader constructs a Leader for this node over peers (which must
// include self) and registers it, starting its heartbeat loop. metrics may
// be nil.
func NewLeader(node Node, peers []Address, metrics Metrics) *Leader {
	self := node.Address()
	l := &Leader{
		node:      node,
		logger:    kitlog.With(node.Logger(), "role", "leader"),
		metrics:   metrics,
		peers:     peers,
		self:      self,
		current:   Ballot{Round: 0, Leader: self},
		proposals: make(map[Slot]Proposal),
	}
	node.Register(l)
	l.scheduleHeartbeat()
	if metrics != nil {
		metrics.SetBallotRound(l.current.Round)
	}
	return l
}

func (l *Leader) scheduleHeartbeat() {
	l.heartbeat = l.node.Timer().Schedule(LeaderTimeout/2, func() {
		if l.active {
			l.node.Send(l.peers, Active{})
		}
		l.scheduleHeartbeat()
	})
}

// Deliver implements Role.
func (l *Leader) Deliver(from Address, msg Message) {
	switch m := msg.(type) {
	case Propose:
		l.handlePropose(m)
	case Adopted:
		l.handleAdopted(m)
	case Preempted:
		l.handlePreempted(m)
	}
}

func (l *Leader) handlePropose(m Propose) {
	if _, driving := l.proposals[m.Slot]; driving {
		return
	}
	if l.active {
		l.proposals[m.Slot] = m.Proposal
		NewCommander(l.node, l.current, m.Slot, m.Proposal, l.peers)
		if l.metrics != nil {
			l.metrics.IncCommandersSpawned()
		}
		return
	}
	if !l.scouting {
		l.scouting = true
		NewScout(l.node, l.current, l.peers)
		if l.metrics != nil {
			l.metrics.IncScoutsSpawned()
		}
	}
	// Already scouting: drop. The Replica will re-propose on retry.
}

func (l *Leader) handleAdopted(m Adopted) {
	if m.Ballot != l.current {
		return
	}
	l.scouting = false
	for slot, proposal := range m.Accepted {
		l.proposals[slot] = proposal
	}
	l.active = true
	l.logger.Log("msg", "adopted", "ballot", l.current)
	// Commanders are not spawned here; Replicas re-issue any undecided
	// proposals via fresh Propose messages.
	if l.metrics != nil {
		l.metrics.SetLeaderActive(true)
	}
}

func (l *Leader) handlePreempted(m Preempted) {
	if m.Slot == nil {
		l.scouting = false
	}
	l.active = false
	l.current = l.current.Next(m.PreemptedBy, l.self)
	l.logger.Log("msg", "preempted", "by", m.PreemptedBy, "newBallot", l.current)
	if l.metrics != nil {
		l.metrics.SetLeaderActive(false)
		l.metrics.SetBallotRound(l.current.Round)
		l.metrics.IncPreempted()
	}
}

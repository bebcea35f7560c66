package paxos

import (
	kitlog "github.com/go-kit/kit/log"
)

// Acceptor is the passive storage role: a ballot promise and a map from
// slot to the highest-ballot proposal ever accepted for that slot
// (invariant A1). The promise only increases (invariant A2). Acceptor
// never fails; it only refuses, by replying with a higher promise than
// the caller sent, and it performs no retransmission of its own.
type Acceptor struct {
	node    Node
	logger  kitlog.Logger
	metrics Metrics
	promise Ballot
	stored  map[Slot]SlotProposal
}

// NewAcceptor constructs an Acceptor bound to node and registers it for
// dispatch. metrics may be nil.
func NewAcceptor(node Node, metrics Metrics) *Acceptor {
	a := &Acceptor{
		node:    node,
		logger:  kitlog.With(node.Logger(), "role", "acceptor"),
		metrics: metrics,
		promise: NullBallot,
		stored:  make(map[Slot]SlotProposal),
	}
	node.Register(a)
	return a
}

// Deliver implements Role.
func (a *Acceptor) Deliver(from Address, msg Message) {
	switch m := msg.(type) {
	case Prepare:
		a.handlePrepare(from, m)
	case Accept:
		a.handleAccept(from, m)
	}
}

func (a *Acceptor) handlePrepare(from Address, m Prepare) {
	if a.promise.Less(m.Ballot) {
		a.promise = m.Ballot
		a.logger.Log("msg", "promised new ballot", "ballot", a.promise, "scout", from)
		if a.metrics != nil {
			a.metrics.SetAcceptorPromiseRound(a.promise.Round)
		}
		// Notify the local Replica of a probable new leader.
		a.node.Send([]Address{a.node.Address()}, Accepting{Leader: from})
	}
	accepted := make(map[Slot]SlotProposal, len(a.stored))
	for slot, sp := range a.stored {
		accepted[slot] = sp
	}
	a.node.Send([]Address{from}, Promise{Ballot: a.promise, Accepted: accepted})
}

func (a *Acceptor) handleAccept(from Address, m Accept) {
	DebugLog(a.logger, "debug", "handleAccept", "slot", m.Slot, "ballot", m.Ballot, "commander", from)
	// The permissive choice noted in spec.md's open question: storage is
	// allowed at ballot == promise, not only ballot > promise.
	if a.promise.LessEq(m.Ballot) {
		if a.promise.Less(m.Ballot) {
			a.promise = m.Ballot
			if a.metrics != nil {
				a.metrics.SetAcceptorPromiseRound(a.promise.Round)
			}
		}
		if sp, found := a.stored[m.Slot]; !found || sp.Ballot.Less(m.Ballot) {
			a.stored[m.Slot] = SlotProposal{Ballot: m.Ballot, Proposal: m.Proposal}
		}
	}
	a.node.Send([]Address{from}, Accepted{Slot: m.Slot, Ballot: a.promise})
}

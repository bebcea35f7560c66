package paxos

import (
	kitlog "github.com/go-kit/kit/log"
)

// Commander is an active Leader's one-shot per-slot acceptance sub-role.
// It drives (ballot, slot, proposal) to a decision (quorum of Accepted at
// its own ballot) or stops on preemption (Accepted at a different ballot).
type Commander struct {
	node     Node
	logger   kitlog.Logger
	ballot   Ballot
	slot     Slot
	proposal Proposal
	peers    []Address
	quorum   int
	alive    bool
	accepted map[Address]bool
	retx     TimerHandle
}

// NewCommander spawns and starts a Commander for (ballot, slot, proposal)
// over peers.
func NewCommander(node Node, ballot Ballot, slot Slot, proposal Proposal, peers []Address) *Commander {
	c := &Commander{
		node:     node,
		logger:   kitlog.With(node.Logger(), "role", "commander", "ballot", ballot, "slot", slot),
		ballot:   ballot,
		slot:     slot,
		proposal: proposal,
		peers:    peers,
		quorum:   Quorum(len(peers)),
		alive:    true,
		accepted: make(map[Address]bool),
	}
	node.Register(c)
	c.broadcastAccept()
	return c
}

func (c *Commander) broadcastAccept() {
	if !c.alive {
		return
	}
	pending := make([]Address, 0, len(c.peers))
	for _, p := range c.peers {
		if !c.accepted[p] {
			pending = append(pending, p)
		}
	}
	c.node.Send(pending, Accept{Slot: c.slot, Ballot: c.ballot, Proposal: c.proposal})
	c.retx = c.node.Timer().Schedule(AcceptRetransmit, func() {
		if c.alive {
			c.broadcastAccept()
		}
	})
}

// Deliver implements Role.
func (c *Commander) Deliver(from Address, msg Message) {
	if !c.alive {
		return
	}
	a, ok := msg.(Accepted)
	if !ok || a.Slot != c.slot {
		return
	}
	if a.Ballot == c.ballot {
		c.accepted[from] = true
		if len(c.accepted) >= c.quorum {
			c.node.Send(c.peers, Decision{Slot: c.slot, Proposal: c.proposal})
			c.node.Send([]Address{c.node.Address()}, Decided{Slot: c.slot})
			c.stop()
		}
	} else {
		slot := c.slot
		c.node.Send([]Address{c.node.Address()}, Preempted{Slot: &slot, PreemptedBy: a.Ballot})
		c.stop()
	}
}

func (c *Commander) stop() {
	if !c.alive {
		return
	}
	c.alive = false
	if c.retx != nil {
		c.retx.Cancel()
	}
	c.node.Unregister(c)
}

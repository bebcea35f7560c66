package paxos

import (
	kitlog "github.com/go-kit/kit/log"
)

// Scout is a Leader's one-shot ballot-adoption sub-role. It is exclusively
// owned by its spawning Leader's node, self-terminates and unregisters on
// either adoption (quorum of Promise at its own ballot) or preemption (a
// Promise at a different ballot).
type Scout struct {
	node    Node
	logger  kitlog.Logger
	ballot  Ballot
	peers   []Address
	quorum  int
	alive   bool
	promised map[Address]bool
	merged  map[Slot]SlotProposal
	retx    TimerHandle
}

// NewScout spawns and starts a Scout for ballot over peers (which must
// include this node's own address to be counted toward quorum, as with
// every other role in the cluster).
func NewScout(node Node, ballot Ballot, peers []Address) *Scout {
	s := &Scout{
		node:     node,
		logger:   kitlog.With(node.Logger(), "role", "scout", "ballot", ballot),
		ballot:   ballot,
		peers:    peers,
		quorum:   Quorum(len(peers)),
		alive:    true,
		promised: make(map[Address]bool),
		merged:   make(map[Slot]SlotProposal),
	}
	node.Register(s)
	s.broadcastPrepare()
	return s
}

func (s *Scout) broadcastPrepare() {
	if !s.alive {
		return
	}
	s.node.Send(s.peers, Prepare{Ballot: s.ballot})
	s.retx = s.node.Timer().Schedule(PrepareRetransmit, func() {
		if s.alive {
			s.broadcastPrepare()
		}
	})
}

// Deliver implements Role.
func (s *Scout) Deliver(from Address, msg Message) {
	if !s.alive {
		return
	}
	p, ok := msg.(Promise)
	if !ok {
		return
	}
	if p.Ballot == s.ballot {
		for slot, sp := range p.Accepted {
			if existing, found := s.merged[slot]; !found || existing.Ballot.Less(sp.Ballot) {
				s.merged[slot] = sp
			}
		}
		s.promised[from] = true
		if len(s.promised) >= s.quorum {
			accepted := make(map[Slot]Proposal, len(s.merged))
			for slot, sp := range s.merged {
				accepted[slot] = sp.Proposal
			}
			s.node.Send([]Address{s.node.Address()}, Adopted{Ballot: s.ballot, Accepted: accepted})
			s.stop()
		}
	} else {
		s.node.Send([]Address{s.node.Address()}, Preempted{Slot: nil, PreemptedBy: p.Ballot})
		s.stop()
	}
}

func (s *Scout) stop() {
	if !s.alive {
		return
	}
	s.alive = false
	if s.retx != nil {
		s.retx.Cancel()
	}
	s.node.Unregister(s)
}

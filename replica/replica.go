package replica

import (
	kitlog "github.com/go-kit/kit/log"

	"paxoscore.dev/server/paxos"
)

// Replica is the client-facing role: it originates proposals at fresh
// slots, tracks which slots it believes decided, drains decisions in order
// onto Application, and suppresses duplicate commits by proposal equality.
//
// Invariants (spec.md section 3): decisions is append-consistent (R1);
// nextCommitSlot <= nextProposeSlot (R2); appliedState reflects exactly
// the decisions at slots 0..nextCommitSlot-1 applied in order, skipping
// slots whose proposal duplicates an earlier decision (R3).
type Replica struct {
	node    paxos.Node
	app     Application
	metrics paxos.Metrics
	self    paxos.Address
	peers   []paxos.Address

	logger kitlog.Logger

	appliedState    []byte
	nextCommitSlot  paxos.Slot
	nextProposeSlot paxos.Slot
	decisions       map[paxos.Slot]paxos.Proposal
	proposals       map[paxos.Slot]paxos.Proposal
	committed       []paxos.Proposal
	latestLeader    paxos.Address

	leaderAlive paxos.TimerHandle
}

// New constructs a Replica for this node over peers (which must include
// self) driving app, and registers it. metrics may be nil.
func New(node paxos.Node, peers []paxos.Address, app Application, metrics paxos.Metrics) *Replica {
	self := node.Address()
	r := &Replica{
		node:         node,
		app:          app,
		metrics:      metrics,
		self:         self,
		peers:        peers,
		logger:       kitlog.With(node.Logger(), "role", "replica"),
		decisions:    make(map[paxos.Slot]paxos.Proposal),
		proposals:    make(map[paxos.Slot]paxos.Proposal),
		latestLeader: self,
	}
	node.Register(r)
	r.resetLeaderAlive()
	return r
}

// Seed primes a freshly constructed Replica with catch-up state received
// via Welcome (SPEC_FULL.md section 10). It must be called before the
// replica's node starts accepting any traffic, since it writes
// appliedState, nextCommitSlot and decisions directly rather than
// draining through commit.
func (r *Replica) Seed(w paxos.Welcome) {
	r.appliedState = append([]byte(nil), w.State...)
	r.nextCommitSlot = w.NextCommitSlot
	for slot, p := range w.Decisions {
		r.decisions[slot] = p
		if slot < w.NextCommitSlot {
			// Already reflected in State: remember it for duplicate
			// suppression (R3) of later commits.
			r.committed = append(r.committed, p)
		}
		if slot+1 > r.nextProposeSlot {
			r.nextProposeSlot = slot + 1
		}
	}
}

// AppliedState returns the current applied state, for tests and catch-up.
func (r *Replica) AppliedState() []byte {
	return append([]byte(nil), r.appliedState...)
}

// NextCommitSlot returns the next slot awaiting a decision before it can
// be committed, for Welcome catch-up payloads.
func (r *Replica) NextCommitSlot() paxos.Slot {
	return r.nextCommitSlot
}

// Decisions returns a copy of the replica's decided-slot map, for Welcome
// catch-up payloads.
func (r *Replica) Decisions() map[paxos.Slot]paxos.Proposal {
	out := make(map[paxos.Slot]paxos.Proposal, len(r.decisions))
	for slot, p := range r.decisions {
		out[slot] = p
	}
	return out
}

// Deliver implements paxos.Role.
func (r *Replica) Deliver(from paxos.Address, msg paxos.Message) {
	switch m := msg.(type) {
	case paxos.Invoke:
		r.handleInvoke(m)
	case paxos.Decision:
		r.handleDecision(m)
	case paxos.Adopted:
		r.latestLeader = r.self
		r.resetLeaderAlive()
	case paxos.Accepting:
		r.latestLeader = m.Leader
		r.resetLeaderAlive()
	case paxos.Active:
		if from == r.latestLeader {
			r.resetLeaderAlive()
		}
	case paxos.Join:
		r.handleJoin(from)
	}
}

func (r *Replica) handleInvoke(m paxos.Invoke) {
	proposal := paxos.Proposal{Caller: m.Caller, ClientID: m.ClientID, Input: m.Input}
	slot, found := r.slotFor(proposal)
	if !found {
		slot = r.nextProposeSlot
		r.nextProposeSlot++
	}
	r.proposals[slot] = proposal
	r.sendPropose(slot, proposal)
}

func (r *Replica) slotFor(p paxos.Proposal) (paxos.Slot, bool) {
	for slot, existing := range r.proposals {
		if existing.Equal(p) {
			return slot, true
		}
	}
	return 0, false
}

func (r *Replica) sendPropose(slot paxos.Slot, proposal paxos.Proposal) {
	// latestLeader starts out as this replica's own address, which is
	// exactly the "else own node address" fallback spec.md's Invoke
	// operation calls for when no leader is known yet.
	r.node.Send([]paxos.Address{r.latestLeader}, paxos.Propose{Slot: slot, Proposal: proposal})
}

func (r *Replica) handleDecision(m paxos.Decision) {
	if existing, found := r.decisions[m.Slot]; found {
		if !existing.Equal(m.Proposal) {
			r.logger.Log("msg", "BUG: conflicting decisions at same slot", "slot", m.Slot)
			panic("paxos safety violation: two different proposals decided at the same slot")
		}
		return
	}
	r.decisions[m.Slot] = m.Proposal
	if m.Slot+1 > r.nextProposeSlot {
		r.nextProposeSlot = m.Slot + 1
	}

	if mine, found := r.proposals[m.Slot]; found && !mine.IsNoop() && !mine.Equal(m.Proposal) {
		// Lost our slot to another proposer: re-propose at a fresh slot.
		fresh := r.nextProposeSlot
		r.nextProposeSlot++
		r.proposals[fresh] = mine
		r.sendPropose(fresh, mine)
	}

	r.drain()
}

func (r *Replica) drain() {
	for {
		proposal, found := r.decisions[r.nextCommitSlot]
		if !found {
			return
		}
		r.commit(r.nextCommitSlot, proposal)
		r.nextCommitSlot++
		if r.metrics != nil {
			r.metrics.SetReplicaCommitSlot(uint64(r.nextCommitSlot))
		}
	}
}

func (r *Replica) commit(slot paxos.Slot, proposal paxos.Proposal) {
	for _, prior := range r.committed {
		if prior.Equal(proposal) {
			return
		}
	}
	r.committed = append(r.committed, proposal)
	if r.metrics != nil {
		r.metrics.IncCommits()
	}
	if proposal.IsNoop() {
		return
	}
	newState, output := r.app.Execute(r.appliedState, proposal.Input)
	r.appliedState = newState
	r.node.Send([]paxos.Address{proposal.Caller}, paxos.Invoked{ClientID: proposal.ClientID, Output: output})
}

func (r *Replica) handleJoin(sender paxos.Address) {
	for _, peer := range r.peers {
		if peer == sender {
			r.node.Send([]paxos.Address{sender}, paxos.Welcome{
				State:          r.AppliedState(),
				NextCommitSlot: r.nextCommitSlot,
				Decisions:      r.Decisions(),
			})
			return
		}
	}
}

func (r *Replica) resetLeaderAlive() {
	if r.leaderAlive != nil {
		r.leaderAlive.Cancel()
	}
	// The callable itself is passed to the timer, to be invoked on expiry
	// — not invoked eagerly here (spec.md section 9, open question).
	r.leaderAlive = r.node.Timer().Schedule(paxos.LeaderTimeout, r.onLeaderTimeout)
}

func (r *Replica) onLeaderTimeout() {
	r.latestLeader = r.nextPeer(r.latestLeader)
	r.logger.Log("msg", "leader presumed dead, rotating", "newLatestLeader", r.latestLeader)
	r.resetLeaderAlive()
}

func (r *Replica) nextPeer(cur paxos.Address) paxos.Address {
	if len(r.peers) == 0 {
		return cur
	}
	for idx, p := range r.peers {
		if p == cur {
			return r.peers[(idx+1)%len(r.peers)]
		}
	}
	return r.peers[0]
}
